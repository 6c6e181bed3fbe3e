package interfaces

import (
	"context"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// DescriptorRepository defines the interface for runtime field descriptor
// storage. Catalog-seeded descriptors live in the TenantRegistry; this store
// holds the admin-edited overrides that take precedence over the catalog.
type DescriptorRepository interface {
	// Get retrieves the descriptor for (object, field). Returns an error
	// wrapping model.ErrDescriptorNotFound when none is stored.
	Get(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error)

	// Save creates or updates a descriptor and returns the saved copy
	Save(ctx context.Context, tenant types.TenantID, desc *model.FieldDescriptor) (*model.FieldDescriptor, error)

	// ListByObject returns all stored descriptors of an object, sorted by
	// field code
	ListByObject(ctx context.Context, tenant types.TenantID, object types.ObjectCode) ([]model.FieldDescriptor, error)
}
