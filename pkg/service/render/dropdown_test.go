package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/service/metadata"
	"github.com/vellum-crm/vellum/pkg/service/render"
)

type stubSource struct {
	doc *metadoc.Document
	err error
}

func (s *stubSource) Fetch(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc.Clone(), nil
}

func tierDocument(sorting types.SortMode) *metadoc.Document {
	doc := metadoc.New(metadoc.DefaultRoot)
	doc.Sorting = sorting
	doc.Rows = []metadoc.Row{
		{Label: "Silver", Code: "silver", Default: metadoc.BoolFalse},
		{Label: "Gold", Code: "gold", Default: metadoc.BoolTrue},
		{Label: "Bronze", Code: "bronze", Default: metadoc.BoolFalse},
	}
	return doc
}

func tierDropdown(doc *metadoc.Document, err error) *render.Dropdown {
	desc := &model.FieldDescriptor{
		Tenant:        "acme",
		Object:        "account",
		Field:         "tier",
		Kind:          types.FieldKindDropdown,
		Label:         "Tier",
		DecimalPlaces: -1,
		SourcePath:    "account/tier/options",
		SourceType:    metadoc.DefaultRoot,
	}
	accessor := metadata.NewAccessor(&stubSource{doc: doc, err: err})
	return render.NewDropdown(desc, accessor)
}

func TestDropdown_Display(t *testing.T) {
	ctx := context.Background()

	t.Run("stored code displays its label", func(t *testing.T) {
		r := tierDropdown(tierDocument(types.SortModeManual), nil)

		got, err := r.Display(ctx, types.RenderModeView, "gold")
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal("Gold")
	})

	t.Run("unknown code falls back to the raw code", func(t *testing.T) {
		r := tierDropdown(tierDocument(types.SortModeManual), nil)

		got, err := r.Display(ctx, types.RenderModeTable, "platinum")
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal("platinum")
	})

	t.Run("fetch failure falls back and reports the error", func(t *testing.T) {
		r := tierDropdown(nil, errors.New("backend down"))

		got, err := r.Display(ctx, types.RenderModeView, "gold")
		gt.Error(t, err)
		gt.Value(t, got).Equal("gold")
	})

	t.Run("disabled source falls back silently", func(t *testing.T) {
		desc := &model.FieldDescriptor{
			Tenant: "acme",
			Object: "account",
			Field:  "tier",
			Kind:   types.FieldKindDropdown,
		}
		accessor := metadata.NewAccessor(&stubSource{doc: tierDocument(types.SortModeManual)})
		r := render.NewDropdown(desc, accessor)

		got, err := r.Display(ctx, types.RenderModeView, "gold")
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal("gold")
	})

	t.Run("empty stays empty", func(t *testing.T) {
		r := tierDropdown(tierDocument(types.SortModeManual), nil)

		got, err := r.Display(ctx, types.RenderModeView, "")
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal("")
	})
}

func TestDropdown_Options(t *testing.T) {
	ctx := context.Background()

	t.Run("manual sorting keeps document order", func(t *testing.T) {
		r := tierDropdown(tierDocument(types.SortModeManual), nil)

		options, err := r.Options(ctx)
		gt.NoError(t, err).Required()

		gt.Array(t, options).Length(3).Required()
		gt.Value(t, options[0].Code).Equal("silver")
		gt.Value(t, options[1].Code).Equal("gold")
		gt.Value(t, options[1].Default).Equal(true)
		gt.Value(t, options[2].Code).Equal("bronze")
	})

	t.Run("alpha sorting orders by label", func(t *testing.T) {
		r := tierDropdown(tierDocument(types.SortModeAlpha), nil)

		options, err := r.Options(ctx)
		gt.NoError(t, err).Required()

		gt.Array(t, options).Length(3).Required()
		gt.Value(t, options[0].Label).Equal("Bronze")
		gt.Value(t, options[1].Label).Equal("Gold")
		gt.Value(t, options[2].Label).Equal("Silver")
	})
}

func TestDropdown_Normalize(t *testing.T) {
	ctx := context.Background()
	r := tierDropdown(tierDocument(types.SortModeManual), nil)

	t.Run("codes pass through", func(t *testing.T) {
		gt.Value(t, r.Normalize(ctx, "gold")).Equal("gold")
	})

	t.Run("labels translate to their code", func(t *testing.T) {
		gt.Value(t, r.Normalize(ctx, "Gold")).Equal("gold")
	})

	t.Run("unknown values pass through", func(t *testing.T) {
		gt.Value(t, r.Normalize(ctx, "platinum")).Equal("platinum")
	})
}
