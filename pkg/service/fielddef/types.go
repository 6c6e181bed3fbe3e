package fielddef

import (
	"context"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// DescriptorSource fetches field descriptors by address. Implementations
// signal an absent descriptor with an error wrapping
// model.ErrDescriptorNotFound; the resolver turns that into a nil result.
type DescriptorSource interface {
	Fetch(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error)
}
