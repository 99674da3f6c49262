package domain

import (
	"errors"
	"fmt"
)

// DomainError is the single error shape handlers produce. Every failure
// path classifies into exactly one of the codes below; the REST layer maps
// codes to HTTP statuses.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeMalformedInput   = "MALFORMED_INPUT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeBusinessConflict = "BUSINESS_CONFLICT"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
)

func NewUnauthenticatedError() *DomainError {
	return &DomainError{
		Code:    ErrCodeUnauthenticated,
		Message: "User not authenticated",
	}
}

func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: message,
	}
}

func NewMalformedInputError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedInput,
		Message: "Invalid JSON format.",
		Err:     err,
	}
}

func NewNotFoundError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

func NewBusinessConflictError(message string) *DomainError {
	if message == "" {
		message = "Operation cannot be completed due to conflict"
	}
	return &DomainError{
		Code:    ErrCodeBusinessConflict,
		Message: message,
	}
}

// NewUpstreamError wraps a transport-level failure from the store or the
// payment processor. The message is what the client sees; err carries the
// upstream detail for logging only.
func NewUpstreamError(message string, err error) *DomainError {
	if message == "" {
		message = "internal server error"
	}
	return &DomainError{
		Code:    ErrCodeUpstream,
		Message: message,
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
