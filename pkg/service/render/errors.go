package render

import "errors"

// Sentinel errors for field rendering
var (
	// ErrAmbiguousTime rejects timestamps without an explicit Z or numeric
	// offset. A local time with no zone is never silently guessed.
	ErrAmbiguousTime = errors.New("timestamp has no timezone offset")

	// ErrMalformedValue marks a stored value that does not parse for its
	// field kind.
	ErrMalformedValue = errors.New("stored value does not parse")

	// ErrNoRenderer is returned by registry lookups with no matching entry
	ErrNoRenderer = errors.New("no renderer registered")
)

// Placeholders rendered for malformed stored values in view and table mode.
// Failures stay scoped to the one field instead of failing the row set.
const (
	InvalidDatePlaceholder   = "Invalid date"
	InvalidNumberPlaceholder = "–"
)
