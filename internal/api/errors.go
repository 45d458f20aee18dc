package api

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies transport failures.
type ErrorKind int

const (
	// HTTPStatus means the backend answered with a non-2xx status.
	HTTPStatus ErrorKind = iota
	// NoResponse means the request never produced a response (connection
	// refused, timeout, cancelled context).
	NoResponse
	// Malformed means the backend answered 2xx but the body could not be
	// decoded as the expected JSON shape.
	Malformed
)

// TransportError describes a failed backend call. Local state is never
// mutated on a TransportError; callers surface it and leave the user's
// input intact for retry.
type TransportError struct {
	Kind    ErrorKind
	Status  int    // HTTP status code, set for HTTPStatus
	Message string // server-provided or decode error detail
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case HTTPStatus:
		if e.Message != "" {
			return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
		}
		return fmt.Sprintf("backend error: status %d", e.Status)
	case NoResponse:
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	default:
		return fmt.Sprintf("malformed backend response: %s", e.Message)
	}
}

// NotFound reports whether the error is an HTTP 404 from the backend.
func (e *TransportError) NotFound() bool {
	return e.Kind == HTTPStatus && e.Status == http.StatusNotFound
}
