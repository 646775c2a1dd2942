package domain

import "errors"

// Sentinel errors shared across services.
var (
	// ErrServerOffline indicates the backend could not be reached at all
	ErrServerOffline = errors.New("server is offline or unreachable")

	// ErrNotFound indicates the requested company or audit does not exist
	ErrNotFound = errors.New("not found")

	// ErrNoCompanySelected indicates an operation that needs a company
	// was invoked without one
	ErrNoCompanySelected = errors.New("no company selected")
)
