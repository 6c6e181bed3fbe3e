package types

import "github.com/google/uuid"

// RowID is a client-only temporary identifier for a custom value row. It
// keys rows across edits within one editing session and is stripped before
// a document is saved; identifiers are regenerated on every load.
type RowID string

// NewRowID generates a new UUID v4 RowID
func NewRowID() RowID {
	return RowID(uuid.New().String())
}

// String returns the string representation of RowID
func (r RowID) String() string {
	return string(r)
}
