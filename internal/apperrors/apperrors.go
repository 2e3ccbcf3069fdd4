// Package apperrors defines the structured errors surfaced to API clients.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in API responses
const (
	CodeNotFound         = "not_found"
	CodeInvalidRequest   = "invalid_request"
	CodeInvalidStructure = "invalid_structure"
	CodeUpstream         = "upstream_error"
	CodeQuotaExhausted   = "quota_exhausted"
	CodeStorage          = "storage_error"
	CodeInternal         = "internal_error"
)

// Error carries a machine-readable code, a human message and a detail string.
// Detail is only exposed to clients in development mode.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Status maps the error code to an HTTP status
func (e *Error) Status() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidRequest, CodeInvalidStructure:
		return http.StatusBadRequest
	case CodeUpstream, CodeQuotaExhausted:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates an Error with the given code and message
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error around an underlying cause, capturing its text as
// the detail string
func Wrap(code, message string, err error) *Error {
	e := &Error{Code: code, Message: message, err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// NotFound creates a not_found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// InvalidRequest creates an invalid_request error
func InvalidRequest(message string) *Error {
	return New(CodeInvalidRequest, message)
}

// From extracts an *Error from err, wrapping unknown errors as internal
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(CodeInternal, "internal error", err)
}
