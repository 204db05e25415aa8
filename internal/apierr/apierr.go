package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed failure every handler maps onto an HTTP response.
// Code is part of the wire contract; Err carries the internal cause.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
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

func NotFound(err error) *Error {
	return New(http.StatusNotFound, "not_found", err)
}

func Unauthorized(err error) *Error {
	return New(http.StatusForbidden, "unauthorized", err)
}

func MissingIdentity() *Error {
	return New(http.StatusUnauthorized, "missing_identity", errors.New("missing identity"))
}

func UpstreamUnavailable(retryable bool, err error) *Error {
	e := New(http.StatusBadGateway, "upstream_unavailable", err)
	if retryable {
		e.Code = "upstream_unavailable_retryable"
	}
	return e
}

func PersistenceUnavailable(err error) *Error {
	return New(http.StatusInternalServerError, "persistence_unavailable", err)
}

// StatusOf resolves the HTTP status for any error, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf resolves the wire error code for any error.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "internal_error"
}
