package editor

import (
	"context"
	"errors"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/service/metadata"
)

// Column names one editable cell of a custom value row
type Column string

const (
	ColumnLabel   Column = "label"
	ColumnCode    Column = "code"
	ColumnDefault Column = "default"
	ColumnIconSet Column = "iconSet"
	ColumnIcon    Column = "icon"
)

// Direction orders a display-only row sort
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// EmptyStateMessage is shown in place of the row table when the document
// has no rows. An empty row collection is a valid document, not an error.
const EmptyStateMessage = "No values defined yet"

// Session drives one metadata document edit: load, row mutations, dirty
// tracking against a canonical baseline, and full-replacement save. A
// Session expects its mutations serialized from a single event loop and is
// not safe for concurrent use.
type Session struct {
	accessor *metadata.Accessor
	saver    metadata.Saver
	tenant   types.TenantID
	path     types.SourcePath
	root     string

	doc      *metadoc.Document
	baseline metadoc.Canonical
	loaded   bool
	saving   bool
}

type SessionOption func(*Session)

// WithRoot sets the root tag used when the session creates a document that
// does not exist yet.
func WithRoot(root string) SessionOption {
	return func(s *Session) {
		s.root = root
	}
}

func NewSession(accessor *metadata.Accessor, saver metadata.Saver, tenant types.TenantID, path types.SourcePath, opts ...SessionOption) *Session {
	s := &Session{
		accessor: accessor,
		saver:    saver,
		tenant:   tenant,
		path:     path,
		root:     metadoc.DefaultRoot,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.doc = metadoc.New(s.root)
	s.baseline = s.doc.Canonical()
	return s
}

// Load fetches the document and snapshots the comparison baseline. Every
// row gets a fresh temporary identifier; identifiers never survive across
// loads. A document that does not exist yet starts as a fresh empty one,
// so the create flow and the edit flow share the same session.
func (s *Session) Load(ctx context.Context) error {
	doc, err := s.accessor.Get(ctx, s.tenant, s.path)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrDocumentNotFound):
		doc = metadoc.New(s.root)
	default:
		return err
	}

	for i := range doc.Rows {
		doc.Rows[i].ID = types.NewRowID()
	}
	s.doc = doc
	s.baseline = doc.Canonical()
	s.loaded = true
	return nil
}

// Rows returns a copy of the working rows in persisted order
func (s *Session) Rows() []metadoc.Row {
	rows := make([]metadoc.Row, len(s.doc.Rows))
	copy(rows, s.doc.Rows)
	return rows
}

func (s *Session) Title() string {
	return s.doc.Title
}

func (s *Session) SetTitle(title string) {
	s.doc.Title = title
}

func (s *Session) Sorting() types.SortMode {
	return s.doc.Sorting
}

func (s *Session) SetSorting(mode types.SortMode) {
	s.doc.Sorting = mode
}

// AddRow appends a row with all fields defaulted and returns its temporary
// identifier.
func (s *Session) AddRow() types.RowID {
	row := metadoc.NewRow()
	s.doc.Rows = append(s.doc.Rows, row)
	return row.ID
}

// DeleteRow removes the row with the given temporary identifier
func (s *Session) DeleteRow(id types.RowID) error {
	for i := range s.doc.Rows {
		if s.doc.Rows[i].ID == id {
			s.doc.Rows = append(s.doc.Rows[:i], s.doc.Rows[i+1:]...)
			return nil
		}
	}
	return goerr.Wrap(ErrRowNotFound, "no row to delete", goerr.V("row_id", id))
}

// SetCell replaces one field of one row
func (s *Session) SetCell(id types.RowID, column Column, value string) error {
	row := s.rowByID(id)
	if row == nil {
		return goerr.Wrap(ErrRowNotFound, "no row for cell edit",
			goerr.V("row_id", id),
			goerr.V("column", column))
	}

	switch column {
	case ColumnLabel:
		row.Label = value
	case ColumnCode:
		row.Code = value
	case ColumnDefault:
		row.Default = value
	case ColumnIconSet:
		row.IconSet = value
	case ColumnIcon:
		row.Icon = value
	default:
		return goerr.New("unknown column", goerr.V("column", column))
	}
	return nil
}

// ToggleDefault flips the row's default flag
func (s *Session) ToggleDefault(id types.RowID) error {
	row := s.rowByID(id)
	if row == nil {
		return goerr.Wrap(ErrRowNotFound, "no row for default toggle", goerr.V("row_id", id))
	}

	if row.IsDefault() {
		row.Default = metadoc.BoolFalse
	} else {
		row.Default = metadoc.BoolTrue
	}
	return nil
}

// ViewRows returns a copy of the rows sorted for display. The working
// collection keeps its persisted order; what the table currently shows has
// no effect on what a save submits.
func (s *Session) ViewRows(column Column, direction Direction) []metadoc.Row {
	view := s.Rows()

	key := func(r metadoc.Row) string {
		switch column {
		case ColumnLabel:
			return r.Label
		case ColumnCode:
			return r.Code
		case ColumnDefault:
			if r.IsDefault() {
				return metadoc.BoolTrue
			}
			return metadoc.BoolFalse
		case ColumnIconSet:
			return r.IconSet
		case ColumnIcon:
			return r.Icon
		}
		return ""
	}

	sort.SliceStable(view, func(i, j int) bool {
		if direction == Descending {
			return key(view[j]) < key(view[i])
		}
		return key(view[i]) < key(view[j])
	})
	return view
}

// Dirty reports whether the working state differs from the baseline. The
// comparison is structural on the canonical forms, so reverting an edit by
// hand returns the session to clean.
func (s *Session) Dirty() bool {
	return metadoc.Diff(s.baseline, s.doc.Canonical())
}

// Saving reports whether a save is in flight
func (s *Session) Saving() bool {
	return s.saving
}

// EmptyState returns the message to show in place of the row table, or ""
// when there are rows to show.
func (s *Session) EmptyState() string {
	if len(s.doc.Rows) == 0 {
		return EmptyStateMessage
	}
	return ""
}

// Save submits the working state as a full replacement document. A second
// Save while one is in flight is refused rather than queued. On success the
// baseline resets to the saved state and the accessor cache picks up the
// new document; on failure the working state is left untouched so the edits
// survive a retry.
func (s *Session) Save(ctx context.Context) error {
	if !s.loaded {
		return goerr.Wrap(ErrNotLoaded, "nothing to save",
			goerr.V("tenant", s.tenant),
			goerr.V("path", s.path))
	}
	if s.saving {
		return goerr.Wrap(ErrSaveInFlight, "refusing concurrent save",
			goerr.V("tenant", s.tenant),
			goerr.V("path", s.path))
	}
	s.saving = true
	defer func() {
		s.saving = false
	}()

	saved, err := s.saver.Save(ctx, s.tenant, s.path, s.buildDocument())
	if err != nil {
		return err
	}

	s.baseline = saved.Canonical()
	s.accessor.Store(s.tenant, s.path, saved)
	return nil
}

// buildDocument rebuilds the submit payload from scratch with the temporary
// row identifiers stripped. It is never a merge with the previously loaded
// document.
func (s *Session) buildDocument() *metadoc.Document {
	doc := metadoc.New(s.doc.Root)
	doc.Title = s.doc.Title
	doc.Sorting = s.doc.Sorting
	doc.Rows = make([]metadoc.Row, len(s.doc.Rows))
	for i, row := range s.doc.Rows {
		row.ID = ""
		doc.Rows[i] = row
	}
	return doc
}

func (s *Session) rowByID(id types.RowID) *metadoc.Row {
	for i := range s.doc.Rows {
		if s.doc.Rows[i].ID == id {
			return &s.doc.Rows[i]
		}
	}
	return nil
}
