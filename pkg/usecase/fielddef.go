package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/interfaces"
	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/service/fielddef"
)

// FieldDefUseCase resolves and stores field descriptors. Stored descriptors
// take precedence over the catalog seeds; the catalog serves as fallback so
// a fresh deployment renders its fields before any admin edit.
type FieldDefUseCase struct {
	repo     interfaces.Repository
	registry *model.TenantRegistry
}

var _ fielddef.DescriptorSource = (*FieldDefUseCase)(nil)

// NewFieldDefUseCase creates a new FieldDefUseCase instance
func NewFieldDefUseCase(repo interfaces.Repository, registry *model.TenantRegistry) *FieldDefUseCase {
	return &FieldDefUseCase{
		repo:     repo,
		registry: registry,
	}
}

// Resolve returns the descriptor for (object, field): the stored override
// when present, otherwise the catalog seed. Returns an error wrapping
// model.ErrDescriptorNotFound when neither defines the field.
func (uc *FieldDefUseCase) Resolve(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error) {
	entry, err := uc.registry.Get(tenant)
	if err != nil {
		return nil, err
	}

	desc, err := uc.repo.Descriptor().Get(ctx, tenant, object, field)
	switch {
	case err == nil:
		return desc, nil
	case errors.Is(err, model.ErrDescriptorNotFound):
		// fall back to the catalog seed
	default:
		return nil, err
	}

	if seed, ok := entry.Descriptor(object, field); ok {
		c := *seed
		return &c, nil
	}
	return nil, goerr.Wrap(model.ErrDescriptorNotFound, "field is not defined",
		goerr.V("tenant", tenant),
		goerr.V("object", object),
		goerr.V("field", field))
}

// Fetch adapts Resolve to the descriptor source contract of the render stack
func (uc *FieldDefUseCase) Fetch(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error) {
	return uc.Resolve(ctx, tenant, object, field)
}

// Save validates and stores an admin-edited descriptor, echoing the saved
// copy. The tenant comes from the request scope, never from the payload.
func (uc *FieldDefUseCase) Save(ctx context.Context, tenant types.TenantID, desc *model.FieldDescriptor) (*model.FieldDescriptor, error) {
	if _, err := uc.registry.Get(tenant); err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, goerr.New("descriptor is required", goerr.V("tenant", tenant))
	}

	d := *desc
	d.Tenant = tenant
	if err := d.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid descriptor", goerr.V("tenant", tenant))
	}
	return uc.repo.Descriptor().Save(ctx, tenant, &d)
}
