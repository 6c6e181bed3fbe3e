package metadoc

import "github.com/vellum-crm/vellum/pkg/domain/types"

// Canonical is the comparison form of a document: temporary row identifiers
// stripped, absent fields replaced by their documented defaults ("" for
// strings, "false" for the default flag) and the sorting mode normalized.
// Two canonical values are structurally equal exactly when the document has
// no unsaved changes relative to the baseline.
type Canonical struct {
	Title   string
	Sorting types.SortMode
	Rows    []CanonicalRow
}

// CanonicalRow is a row with its temporary identifier stripped
type CanonicalRow struct {
	Label   string
	Code    string
	Default string
	IconSet string
	Icon    string
}

// Canonical returns the canonical comparison form of the document
func (d *Document) Canonical() Canonical {
	c := Canonical{
		Title:   d.Title,
		Sorting: d.Sorting.Normalize(),
		Rows:    make([]CanonicalRow, len(d.Rows)),
	}
	for i, row := range d.Rows {
		def := row.Default
		if def == "" {
			def = BoolFalse
		}
		c.Rows[i] = CanonicalRow{
			Label:   row.Label,
			Code:    row.Code,
			Default: def,
			IconSet: row.IconSet,
			Icon:    row.Icon,
		}
	}
	return c
}

// Diff reports whether current differs from baseline. It short-circuits on
// the first difference found; comparison order matters only for early exit,
// not for correctness.
func Diff(baseline, current Canonical) bool {
	if baseline.Title != current.Title {
		return true
	}
	if baseline.Sorting.Normalize() != current.Sorting.Normalize() {
		return true
	}
	if len(baseline.Rows) != len(current.Rows) {
		return true
	}
	for i := range baseline.Rows {
		if baseline.Rows[i] != current.Rows[i] {
			return true
		}
	}
	return false
}
