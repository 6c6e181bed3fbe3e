package metadoc

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// DefaultRoot is the root tag used for dropdown custom-value documents when
// no other root is known (new documents, tests).
const DefaultRoot = "dropdownList"

// BoolFalse and BoolTrue are the string booleans of the wire format. The
// metadata layer predates real booleans: every leaf is a string, so the
// "default" flag is carried as "true"/"false" text.
const (
	BoolFalse = "false"
	BoolTrue  = "true"
)

// Document is the normalized domain form of a metadata document. The wire
// format's single-item-vs-array ambiguity is resolved at the codec boundary,
// so Rows is always a slice here regardless of how the document arrived.
type Document struct {
	Root    string
	Title   string
	Sorting types.SortMode
	Rows    []Row
}

// Row is one custom value entry of a metadata document. ID is a client-only
// temporary identifier assigned when an editing session loads the document;
// it is never encoded to the wire.
type Row struct {
	ID      types.RowID
	Label   string
	Code    string
	Default string
	IconSet string
	Icon    string
}

// NewRow returns a row with all fields defaulted and a fresh temporary
// identifier.
func NewRow() Row {
	return Row{
		ID:      types.NewRowID(),
		Default: BoolFalse,
	}
}

// IsDefault reports whether the row is flagged as the default option
func (r Row) IsDefault() bool {
	return r.Default == BoolTrue
}

// New returns an empty document with the given root tag. An empty row
// collection is a valid document.
func New(root string) *Document {
	return &Document{
		Root:    root,
		Sorting: types.SortModeManual,
	}
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Rows = make([]Row, len(d.Rows))
	copy(c.Rows, d.Rows)
	return &c
}

// Validate checks the document's structural invariants: a root tag must be
// present, the sorting mode must be known, and non-empty row codes must be
// unique within the document.
func (d *Document) Validate() error {
	if d.Root == "" {
		return goerr.New("document root tag is required")
	}
	if s := d.Sorting.Normalize(); !s.IsValid() {
		return goerr.New("invalid sorting mode", goerr.V("sorting", d.Sorting))
	}

	seen := make(map[string]bool, len(d.Rows))
	for i, row := range d.Rows {
		if row.Code == "" {
			continue
		}
		if seen[row.Code] {
			return goerr.New("duplicate row code", goerr.V("code", row.Code), goerr.V("index", i))
		}
		seen[row.Code] = true
	}
	return nil
}

// RowByCode returns the first row with the given code, or nil when no row
// matches. Used by dropdown renderers to map stored codes to labels.
func (d *Document) RowByCode(code string) *Row {
	for i := range d.Rows {
		if d.Rows[i].Code == code {
			return &d.Rows[i]
		}
	}
	return nil
}
