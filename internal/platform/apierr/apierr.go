package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds used across the service. Validation errors block the request
// and name the offending field; transport errors are internal signals that
// trigger the local-store fallback and are never surfaced to clients.
const (
	CodeValidation = "validation_error"
	CodeTransport  = "transport_error"
	CodeNotFound   = "not_found"
	CodeForbidden  = "forbidden"
)

type Error struct {
	Status int
	Code   string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		if e.Field != "" {
			return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
		}
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation reports a blocked submission; field identifies the first failing
// input so the client can move focus to it.
func Validation(field string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Field: field, Err: err}
}

// Transport marks a persistence failure. Callers degrade to the local store
// instead of propagating it to the end user.
func Transport(err error) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: CodeTransport, Err: err}
}

func NotFound(err error) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Err: err}
}

func Forbidden(err error) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Err: err}
}

func IsValidation(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeValidation
}

func IsTransport(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeTransport
}
