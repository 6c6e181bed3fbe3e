package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// Tenant represents a tenant's identity
type Tenant struct {
	ID   types.TenantID
	Name string
}

// ErrTenantNotFound is returned when a tenant is not found in the registry
var ErrTenantNotFound = goerr.New("tenant not found")

// TenantEntry holds a tenant's identity and its catalog-seeded field
// descriptors in declaration order.
type TenantEntry struct {
	Tenant      Tenant
	Descriptors []FieldDescriptor
}

// Descriptor returns the seed descriptor for (object, field), or false when
// the catalog does not define one.
func (e *TenantEntry) Descriptor(object types.ObjectCode, field types.FieldCode) (*FieldDescriptor, bool) {
	for i := range e.Descriptors {
		if e.Descriptors[i].Object == object && e.Descriptors[i].Field == field {
			return &e.Descriptors[i], true
		}
	}
	return nil, false
}

// TenantRegistry is the explicit lookup table for tenant configuration,
// built once at startup from the catalog files. It holds settings only, no
// repository or use case instances.
type TenantRegistry struct {
	entries map[types.TenantID]*TenantEntry
	order   []types.TenantID // preserves registration order
}

// NewTenantRegistry creates a new empty TenantRegistry
func NewTenantRegistry() *TenantRegistry {
	return &TenantRegistry{
		entries: make(map[types.TenantID]*TenantEntry),
	}
}

// Register adds a tenant entry to the registry
func (r *TenantRegistry) Register(entry *TenantEntry) {
	if _, exists := r.entries[entry.Tenant.ID]; !exists {
		r.order = append(r.order, entry.Tenant.ID)
	}
	r.entries[entry.Tenant.ID] = entry
}

// Get retrieves a tenant entry by ID
func (r *TenantRegistry) Get(tenantID types.TenantID) (*TenantEntry, error) {
	entry, ok := r.entries[tenantID]
	if !ok {
		return nil, goerr.Wrap(ErrTenantNotFound, "tenant not found",
			goerr.V("tenant_id", tenantID))
	}
	return entry, nil
}

// List returns all registered tenant entries in registration order
func (r *TenantRegistry) List() []*TenantEntry {
	result := make([]*TenantEntry, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id])
	}
	return result
}

// Tenants returns all registered tenants in registration order
func (r *TenantRegistry) Tenants() []Tenant {
	result := make([]Tenant, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id].Tenant)
	}
	return result
}

// Sole returns the single registered tenant entry when exactly one tenant is
// configured. Single-tenant deployments use it to scope requests that omit
// the tenant header.
func (r *TenantRegistry) Sole() (*TenantEntry, bool) {
	if len(r.order) != 1 {
		return nil, false
	}
	return r.entries[r.order[0]], true
}
