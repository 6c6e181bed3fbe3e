package types

import "fmt"

// SortMode is the document-level sorting setting of a metadata document.
// It controls how dropdown options are ordered when presented for editing;
// it never affects the persisted row order.
type SortMode string

const (
	SortModeManual SortMode = "manual"
	SortModeAlpha  SortMode = "alpha"
)

// AllSortModes returns all valid sort modes
func AllSortModes() []SortMode {
	return []SortMode{
		SortModeManual,
		SortModeAlpha,
	}
}

// IsValid checks if the sort mode is valid
func (s SortMode) IsValid() bool {
	switch s {
	case SortModeManual, SortModeAlpha:
		return true
	default:
		return false
	}
}

// IsDefault reports whether the mode is the document default. Default-valued
// document-level fields are omitted when a document is rebuilt for saving.
func (s SortMode) IsDefault() bool {
	return s == "" || s == SortModeManual
}

// Normalize returns the mode, treating empty as SortModeManual
func (s SortMode) Normalize() SortMode {
	if s == "" {
		return SortModeManual
	}
	return s
}

// String returns the string representation of the sort mode
func (s SortMode) String() string {
	return string(s)
}

// ParseSortMode parses a string into a SortMode. The empty string parses to
// SortModeManual.
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return SortModeManual, nil
	}
	mode := SortMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid sort mode: %s", s)
	}
	return mode, nil
}
