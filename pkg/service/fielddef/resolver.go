package fielddef

import (
	"context"
	"errors"
	"sync"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

type resolveKey struct {
	Tenant types.TenantID
	Object types.ObjectCode
	Field  types.FieldCode
}

// Resolver serves field descriptors from a DescriptorSource with a
// per-instance cache. Absent descriptors are cached too, so a field that
// has no descriptor does not refetch on every render.
type Resolver struct {
	source DescriptorSource

	mu    sync.RWMutex
	cache map[resolveKey]*model.FieldDescriptor
}

// NewResolver creates a resolver over the given source
func NewResolver(source DescriptorSource) *Resolver {
	return &Resolver{
		source: source,
		cache:  make(map[resolveKey]*model.FieldDescriptor),
	}
}

// Resolve returns the descriptor for (object, field), or nil without error
// when none exists. Only transport or backend failures return an error.
func (x *Resolver) Resolve(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error) {
	key := resolveKey{Tenant: tenant, Object: object, Field: field}

	x.mu.RLock()
	cached, ok := x.cache[key]
	x.mu.RUnlock()
	if ok {
		return copyCached(cached), nil
	}

	desc, err := x.source.Fetch(ctx, tenant, object, field)
	if err != nil {
		if errors.Is(err, model.ErrDescriptorNotFound) {
			x.store(key, nil)
			return nil, nil
		}
		return nil, err
	}

	x.store(key, desc)
	return copyCached(desc), nil
}

// ResolveMerged resolves the descriptor and applies the caller's explicit
// overrides, overrides always winning. When every override is set there is
// nothing to resolve and no fetch happens; the result then carries only the
// address and the overridden values.
func (x *Resolver) ResolveMerged(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode, overrides model.DescriptorOverrides) (*model.FieldDescriptor, error) {
	base := model.FieldDescriptor{Tenant: tenant, Object: object, Field: field}

	if !overrides.IsComplete() {
		resolved, err := x.Resolve(ctx, tenant, object, field)
		if err != nil {
			return nil, err
		}
		if resolved != nil {
			base = *resolved
		}
	}

	merged := base.Merge(overrides)
	return &merged, nil
}

// Invalidate drops the cached descriptor so the next Resolve fetches again
func (x *Resolver) Invalidate(tenant types.TenantID, object types.ObjectCode, field types.FieldCode) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.cache, resolveKey{Tenant: tenant, Object: object, Field: field})
}

func (x *Resolver) store(key resolveKey, desc *model.FieldDescriptor) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.cache[key] = copyCached(desc)
}

func copyCached(desc *model.FieldDescriptor) *model.FieldDescriptor {
	if desc == nil {
		return nil
	}
	copied := *desc
	return &copied
}
