package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Backend errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrBackendUnavailable = fmt.Errorf("backend unavailable")
	ErrEntityNotFound     = fmt.Errorf("entity not found")
	ErrUnknownResource    = fmt.Errorf("unknown resource")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Edit session errors
	ErrSubmitInFlight = fmt.Errorf("submit already in flight")
	ErrNotValid       = fmt.Errorf("validation failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
