package util

import (
	"errors"
	"fmt"
	"net/http"
)

// ClientError standardizes failures surfaced by the portal. Every remote-call
// or decode failure is converted into one of these before it reaches a view.
type ClientError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Error codes for the client-side taxonomy.
const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeConflict         = "CONFLICT"
	CodeTransient        = "TRANSIENT"
	CodeDecodeFailure    = "DECODE_FAILURE"
	CodeInternal         = "INTERNAL_ERROR"
)

// NewClientError constructs a ClientError.
func NewClientError(code, message string, status int, details map[string]any) *ClientError {
	return &ClientError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewUnauthenticated flags a missing or stale token. The user should be
// prompted to sign in again.
func NewUnauthenticated(message string) error {
	return NewClientError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

func NewNotFound(resource string) error {
	return &ClientError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewValidationFailed(message string, details map[string]any) error {
	return NewClientError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewConflict(message string) error {
	return NewClientError(CodeConflict, message, http.StatusConflict, nil)
}

// NewTransient marks a retryable failure: timeouts, connection errors and
// remote 5xx responses. No local state is mutated on a transient failure.
func NewTransient(message string, err error) error {
	return &ClientError{
		Code:       CodeTransient,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewDecodeFailure marks a malformed token payload. Callers recover it
// locally by downgrading the session; the 500 status is only for the case
// where one leaks to the error boundary unhandled.
func NewDecodeFailure(err error) error {
	return &ClientError{
		Code:       CodeDecodeFailure,
		Message:    "failed to decode token payload",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternal(err error) error {
	return &ClientError{
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToClientError converts generic errors to ClientError.
func ToClientError(err error) *ClientError {
	if err == nil {
		return nil
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}
	return &ClientError{
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err carries the given taxonomy code.
func HasCode(err error, code string) bool {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	return clientErr.Code == code
}
