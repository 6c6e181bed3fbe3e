package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// TestIDs holds the per-mode data-test identifiers of a field, used by UI
// automation to address the rendered control in each mode.
type TestIDs struct {
	Edit  string `json:"edit,omitempty"`
	View  string `json:"view,omitempty"`
	Table string `json:"table,omitempty"`
}

// ForMode returns the identifier for the given render mode
func (t TestIDs) ForMode(mode types.RenderMode) string {
	switch mode {
	case types.RenderModeEdit:
		return t.Edit
	case types.RenderModeTable:
		return t.Table
	default:
		return t.View
	}
}

// FieldDescriptor is the declarative specification of a form field, resolved
// by (object code, field code) within a tenant. Descriptors are fetched and
// merged, never mutated by renderers.
//
// DecimalPlaces < 0 means "no fixed precision"; SourceType names the root tag
// the field's metadata document is expected to carry (dropdown fields only).
type FieldDescriptor struct {
	Tenant        types.TenantID   `json:"tenant"`
	Object        types.ObjectCode `json:"object"`
	Field         types.FieldCode  `json:"field"`
	Kind          types.FieldKind  `json:"kind"`
	Label         string           `json:"label"`
	Placeholder   string           `json:"placeholder,omitempty"`
	HelpText      string           `json:"helpText,omitempty"`
	Format        string           `json:"format,omitempty"`
	DecimalPlaces int              `json:"decimalPlaces"`
	AllowSearch   bool             `json:"allowSearch"`
	SourcePath    types.SourcePath `json:"sourcePath,omitempty"`
	SourceType    string           `json:"sourceType,omitempty"`
	TestIDs       TestIDs          `json:"testIds"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Validate checks the descriptor's addressing and kind
func (d *FieldDescriptor) Validate() error {
	if err := d.Tenant.Validate(); err != nil {
		return goerr.Wrap(err, "invalid descriptor tenant")
	}
	if err := d.Object.Validate(); err != nil {
		return goerr.Wrap(err, "invalid descriptor object code")
	}
	if err := d.Field.Validate(); err != nil {
		return goerr.Wrap(err, "invalid descriptor field code")
	}
	if !d.Kind.IsValid() {
		return goerr.New("invalid descriptor field kind",
			goerr.V("object", d.Object),
			goerr.V("field", d.Field),
			goerr.V("kind", d.Kind))
	}
	if err := d.SourcePath.Validate(); err != nil {
		return goerr.Wrap(err, "invalid descriptor source path")
	}
	return nil
}

// DescriptorOverrides carries explicitly-set caller configuration. A nil
// field means "not set, use the resolved descriptor's value"; a non-nil field
// always wins over the fetched value. With every field set a renderer needs
// no resolver at all.
type DescriptorOverrides struct {
	Label         *string
	Placeholder   *string
	HelpText      *string
	Format        *string
	DecimalPlaces *int
	AllowSearch   *bool
	SourcePath    *types.SourcePath
	SourceType    *string
	TestIDs       *TestIDs
}

// IsComplete reports whether every override is set, i.e. resolving a
// descriptor would contribute nothing.
func (o DescriptorOverrides) IsComplete() bool {
	return o.Label != nil &&
		o.Placeholder != nil &&
		o.HelpText != nil &&
		o.Format != nil &&
		o.DecimalPlaces != nil &&
		o.AllowSearch != nil &&
		o.SourcePath != nil &&
		o.SourceType != nil &&
		o.TestIDs != nil
}

// Merge returns a copy of the descriptor with every set override applied
func (d FieldDescriptor) Merge(o DescriptorOverrides) FieldDescriptor {
	if o.Label != nil {
		d.Label = *o.Label
	}
	if o.Placeholder != nil {
		d.Placeholder = *o.Placeholder
	}
	if o.HelpText != nil {
		d.HelpText = *o.HelpText
	}
	if o.Format != nil {
		d.Format = *o.Format
	}
	if o.DecimalPlaces != nil {
		d.DecimalPlaces = *o.DecimalPlaces
	}
	if o.AllowSearch != nil {
		d.AllowSearch = *o.AllowSearch
	}
	if o.SourcePath != nil {
		d.SourcePath = *o.SourcePath
	}
	if o.SourceType != nil {
		d.SourceType = *o.SourceType
	}
	if o.TestIDs != nil {
		d.TestIDs = *o.TestIDs
	}
	return d
}
