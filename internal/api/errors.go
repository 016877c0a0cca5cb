package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned for 404 responses. Read paths treat it as
	// "absent, use default"; upsert paths treat it as "fall back to create".
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned for 401 responses, after the registered
	// unauthorized hook has fired.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError carries any other non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// IsServerError reports whether err is a 5xx response.
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= http.StatusInternalServerError
}
