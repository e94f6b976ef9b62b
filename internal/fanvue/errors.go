package fanvue

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when no access token is available or the
// platform rejected the one we have.
var ErrUnauthenticated = errors.New("not authenticated")

// APIError is any non-2xx response from the Fanvue API. The raw status and
// body are preserved for debugging against the live API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fanvue API error (status %d): %s", e.Status, e.Body)
}

// ValidationError captures a precondition failure detected before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
