package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is wrapped by every error caused by a non-2xx backend response.
var ErrRequestFailed = errors.New("backend request failed")

// StatusError reports a non-2xx response from an endpoint.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == 404
}
