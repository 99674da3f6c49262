package stripe

import (
	"errors"
	"fmt"
)

// Error is a structured error decoded from a non-2xx Stripe response.
type Error struct {
	Type       string
	Code       string
	Message    string
	StatusCode int
}

type errorResponse struct {
	Err struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("stripe error [%s/%s]: %s (status: %d)", e.Type, e.Code, e.Message, e.StatusCode)
}

func IsStripeError(err error) (*Error, bool) {
	var stripeErr *Error
	ok := errors.As(err, &stripeErr)
	return stripeErr, ok
}
