package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code and a
// machine-readable detail string for the response body.
type HTTPError struct {
	Code   int
	Detail string
}

func (e *HTTPError) Error() string {
	return e.Detail
}

// NewHTTPError creates a new HTTPError with the given code and detail.
func NewHTTPError(code int, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Detail: detail,
	}
}

// Helpers for common errors
var (
	ErrBadRequest   = func(detail string) *HTTPError { return NewHTTPError(http.StatusBadRequest, detail) }
	ErrUnauthorized = func(detail string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, detail) }
)
