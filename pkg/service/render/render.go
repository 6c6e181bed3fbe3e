package render

import (
	"context"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// Renderer turns a stored field value into display text for a mode. Edit
// and view share the renderer's normalization so they cannot disagree about
// what a stored value means.
//
// Display never fails the row set: malformed values come back as a
// placeholder string. The error return reports source trouble (a dropdown
// whose metadata document cannot be fetched); the returned text is still
// usable as a fallback.
type Renderer interface {
	Display(ctx context.Context, mode types.RenderMode, stored string) (string, error)
}

// Text is the passthrough renderer for plain string fields
type Text struct {
	desc *model.FieldDescriptor
}

func NewText(desc *model.FieldDescriptor) *Text {
	return &Text{desc: desc}
}

func (r *Text) Display(ctx context.Context, mode types.RenderMode, stored string) (string, error) {
	return stored, nil
}
