package metadata

import "errors"

// Sentinel errors for metadata access
var (
	// ErrDisabled is returned when the accessor is disabled or no source
	// path is configured. Callers render a placeholder instead of failing.
	ErrDisabled = errors.New("metadata source is disabled")
)
