package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

type descriptorKey struct {
	Tenant types.TenantID
	Object types.ObjectCode
	Field  types.FieldCode
}

type descriptorRepository struct {
	mu    sync.RWMutex
	descs map[descriptorKey]*model.FieldDescriptor
}

func newDescriptorRepository() *descriptorRepository {
	return &descriptorRepository{
		descs: make(map[descriptorKey]*model.FieldDescriptor),
	}
}

// copyDescriptor creates a copy of a descriptor. All descriptor fields are
// value types, so a struct copy is a deep copy.
func copyDescriptor(d *model.FieldDescriptor) *model.FieldDescriptor {
	copied := *d
	return &copied
}

func (r *descriptorRepository) Get(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.descs[descriptorKey{Tenant: tenant, Object: object, Field: field}]
	if !ok {
		return nil, goerr.Wrap(model.ErrDescriptorNotFound, "descriptor not found",
			goerr.V("tenant", tenant), goerr.V("object", object), goerr.V("field", field))
	}

	return copyDescriptor(desc), nil
}

func (r *descriptorRepository) Save(ctx context.Context, tenant types.TenantID, desc *model.FieldDescriptor) (*model.FieldDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := copyDescriptor(desc)
	saved.Tenant = tenant
	saved.UpdatedAt = time.Now().UTC()

	r.descs[descriptorKey{Tenant: tenant, Object: desc.Object, Field: desc.Field}] = saved

	return copyDescriptor(saved), nil
}

func (r *descriptorRepository) ListByObject(ctx context.Context, tenant types.TenantID, object types.ObjectCode) ([]model.FieldDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descs := make([]model.FieldDescriptor, 0)
	for key, d := range r.descs {
		if key.Tenant == tenant && key.Object == object {
			descs = append(descs, *copyDescriptor(d))
		}
	}
	sort.Slice(descs, func(i, j int) bool { return descs[i].Field < descs[j].Field })

	return descs, nil
}
