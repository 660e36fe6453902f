package ptn

import "errors"

var (
	// ErrBadPattern reports malformed path-pattern syntax.
	// Compile wraps it with the offending token so callers can both
	// errors.Is against the sentinel and read the detail.
	ErrBadPattern = errors.New("syntax error in path pattern")

	// ErrMissingParam reports a mandatory placeholder with no value
	// supplied during reverse path building.
	ErrMissingParam = errors.New("missing path parameter")
)
