package types

import "fmt"

// RenderMode selects how a field renderer presents a value. The three modes
// are mutually exclusive: edit produces an interactive normalization path,
// view a formatted string, table the same string with denser defaults.
type RenderMode string

const (
	RenderModeEdit  RenderMode = "edit"
	RenderModeView  RenderMode = "view"
	RenderModeTable RenderMode = "table"
)

// AllRenderModes returns all valid render modes
func AllRenderModes() []RenderMode {
	return []RenderMode{
		RenderModeEdit,
		RenderModeView,
		RenderModeTable,
	}
}

// IsValid checks if the render mode is valid
func (m RenderMode) IsValid() bool {
	switch m {
	case RenderModeEdit, RenderModeView, RenderModeTable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the render mode
func (m RenderMode) String() string {
	return string(m)
}

// ParseRenderMode parses a string into a RenderMode
func ParseRenderMode(s string) (RenderMode, error) {
	mode := RenderMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid render mode: %s", s)
	}
	return mode, nil
}
