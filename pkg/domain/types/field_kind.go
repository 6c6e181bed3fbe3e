package types

import "fmt"

// FieldKind represents the data kind of a rendered field
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindNumber   FieldKind = "number"
	FieldKindDate     FieldKind = "date"
	FieldKindTime     FieldKind = "time"
	FieldKindDateTime FieldKind = "datetime"
	FieldKindDropdown FieldKind = "dropdown"
)

// AllFieldKinds returns all valid field kinds
func AllFieldKinds() []FieldKind {
	return []FieldKind{
		FieldKindText,
		FieldKindNumber,
		FieldKindDate,
		FieldKindTime,
		FieldKindDateTime,
		FieldKindDropdown,
	}
}

// IsValid checks if the field kind is valid
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindText,
		FieldKindNumber,
		FieldKindDate,
		FieldKindTime,
		FieldKindDateTime,
		FieldKindDropdown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field kind
func (k FieldKind) String() string {
	return string(k)
}

// ParseFieldKind parses a string into a FieldKind
func ParseFieldKind(s string) (FieldKind, error) {
	kind := FieldKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid field kind: %s", s)
	}
	return kind, nil
}
