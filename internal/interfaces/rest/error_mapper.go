package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// genericServerError is the only message a 5xx body ever carries.
// Upstream detail stays in the logs.
const genericServerError = "internal server error"

// ToHTTPStatus maps a classified error's code to its response status.
// Anything that is not a DomainError is an uncaught fault and maps to 500.
func ToHTTPStatus(err error) int {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case domain.ErrCodeValidationFailed, domain.ErrCodeMalformedInput:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeBusinessConflict:
		return http.StatusConflict
	case domain.ErrCodeUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WriteError converts a classified error into an HTTP response. The body
// carries the classification's message, which never contains upstream
// detail (that lives in the wrapped cause, logged server-side only);
// uncaught faults get the fixed generic message.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := ToHTTPStatus(err)

	message := genericServerError
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	}

	WriteJSON(w, status, ErrorBody{Error: message})
}
