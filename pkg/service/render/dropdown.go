package render

import (
	"context"
	"errors"
	"sort"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/service/metadata"
)

// Option is one selectable dropdown entry
type Option struct {
	Code    string
	Label   string
	Default bool
	IconSet string
	Icon    string
}

// Dropdown renders selection fields backed by a metadata document. The
// stored representation is the row code; labels are presentation only.
type Dropdown struct {
	desc     *model.FieldDescriptor
	accessor *metadata.Accessor
}

func NewDropdown(desc *model.FieldDescriptor, accessor *metadata.Accessor) *Dropdown {
	return &Dropdown{desc: desc, accessor: accessor}
}

func (r *Dropdown) document(ctx context.Context) (*metadoc.Document, error) {
	return r.accessor.Get(ctx, r.desc.Tenant, r.desc.SourcePath)
}

// Options returns the selectable rows for edit mode, ordered per the
// document's sort mode: manual keeps document order, alpha sorts by label.
func (r *Dropdown) Options(ctx context.Context) ([]Option, error) {
	doc, err := r.document(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		options = append(options, Option{
			Code:    row.Code,
			Label:   row.Label,
			Default: row.IsDefault(),
			IconSet: row.IconSet,
			Icon:    row.Icon,
		})
	}

	if doc.Sorting.Normalize() == types.SortModeAlpha {
		sort.SliceStable(options, func(i, j int) bool { return options[i].Label < options[j].Label })
	}

	return options, nil
}

// Normalize maps an interaction value to the stored row code. A label is
// translated to its code; codes and unknown values pass through unchanged.
func (r *Dropdown) Normalize(ctx context.Context, selection string) string {
	doc, err := r.document(ctx)
	if err != nil {
		return selection
	}

	if doc.RowByCode(selection) != nil {
		return selection
	}
	for _, row := range doc.Rows {
		if row.Label == selection {
			return row.Code
		}
	}
	return selection
}

// Display maps the stored code to its row label. Unknown codes fall back
// to the raw code, as does a disabled source; a fetch failure also falls
// back but reports the error alongside.
func (r *Dropdown) Display(ctx context.Context, mode types.RenderMode, stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	doc, err := r.document(ctx)
	if err != nil {
		if errors.Is(err, metadata.ErrDisabled) {
			return stored, nil
		}
		return stored, err
	}

	if row := doc.RowByCode(stored); row != nil {
		return row.Label, nil
	}
	return stored, nil
}
