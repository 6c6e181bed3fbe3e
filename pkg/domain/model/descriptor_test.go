package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

func strPtr(s string) *string                      { return &s }
func intPtr(n int) *int                            { return &n }
func boolPtr(b bool) *bool                         { return &b }
func pathPtr(p types.SourcePath) *types.SourcePath { return &p }

func baseDescriptor() model.FieldDescriptor {
	return model.FieldDescriptor{
		Tenant:        "acme",
		Object:        "Account",
		Field:         "tier",
		Kind:          types.FieldKindDropdown,
		Label:         "Tier",
		Placeholder:   "Select a tier",
		HelpText:      "Commercial tier of the account",
		DecimalPlaces: -1,
		AllowSearch:   true,
		SourcePath:    "Account/tier",
		SourceType:    "dropdownList",
		TestIDs:       model.TestIDs{Edit: "tier-edit", View: "tier-view", Table: "tier-cell"},
	}
}

func TestFieldDescriptor_Merge(t *testing.T) {
	desc := baseDescriptor()

	t.Run("no overrides keeps resolved values", func(t *testing.T) {
		merged := desc.Merge(model.DescriptorOverrides{})
		gt.Value(t, merged).Equal(desc)
	})

	t.Run("explicit overrides always win", func(t *testing.T) {
		merged := desc.Merge(model.DescriptorOverrides{
			Label:         strPtr("Account Tier"),
			Placeholder:   strPtr(""),
			DecimalPlaces: intPtr(2),
			AllowSearch:   boolPtr(false),
			SourcePath:    pathPtr("Account/custom-tier"),
		})

		gt.Value(t, merged.Label).Equal("Account Tier")
		// An explicitly-set empty string is still an override
		gt.Value(t, merged.Placeholder).Equal("")
		gt.Value(t, merged.DecimalPlaces).Equal(2)
		gt.B(t, merged.AllowSearch).False()
		gt.Value(t, merged.SourcePath).Equal(types.SourcePath("Account/custom-tier"))
		// Untouched fields keep the resolved values
		gt.Value(t, merged.HelpText).Equal(desc.HelpText)
		gt.Value(t, merged.TestIDs).Equal(desc.TestIDs)
	})

	t.Run("merge does not mutate the source", func(t *testing.T) {
		_ = desc.Merge(model.DescriptorOverrides{Label: strPtr("Changed")})
		gt.Value(t, desc.Label).Equal("Tier")
	})
}

func TestDescriptorOverrides_IsComplete(t *testing.T) {
	gt.B(t, model.DescriptorOverrides{}.IsComplete()).False()

	full := model.DescriptorOverrides{
		Label:         strPtr("L"),
		Placeholder:   strPtr(""),
		HelpText:      strPtr(""),
		Format:        strPtr(""),
		DecimalPlaces: intPtr(-1),
		AllowSearch:   boolPtr(false),
		SourcePath:    pathPtr(""),
		SourceType:    strPtr(""),
		TestIDs:       &model.TestIDs{},
	}
	gt.B(t, full.IsComplete()).True()
}

func TestFieldDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *model.FieldDescriptor)
		wantErr bool
	}{
		{name: "valid", mutate: func(d *model.FieldDescriptor) {}},
		{name: "missing tenant", mutate: func(d *model.FieldDescriptor) { d.Tenant = "" }, wantErr: true},
		{name: "bad object code", mutate: func(d *model.FieldDescriptor) { d.Object = "9Account" }, wantErr: true},
		{name: "missing field code", mutate: func(d *model.FieldDescriptor) { d.Field = "" }, wantErr: true},
		{name: "unknown kind", mutate: func(d *model.FieldDescriptor) { d.Kind = "picklist" }, wantErr: true},
		{name: "bad source path", mutate: func(d *model.FieldDescriptor) { d.SourcePath = "/lead" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := baseDescriptor()
			tt.mutate(&desc)
			err := desc.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestTestIDs_ForMode(t *testing.T) {
	ids := model.TestIDs{Edit: "e", View: "v", Table: "t"}
	gt.Value(t, ids.ForMode(types.RenderModeEdit)).Equal("e")
	gt.Value(t, ids.ForMode(types.RenderModeView)).Equal("v")
	gt.Value(t, ids.ForMode(types.RenderModeTable)).Equal("t")
}
