package render

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/service/metadata"
)

// Factory builds a renderer for one resolved descriptor
type Factory func(desc *model.FieldDescriptor) Renderer

type registryKey struct {
	Tenant    types.TenantID
	Object    types.ObjectCode
	Component string
}

// Registry maps (tenant, object, component) to renderer factories with
// per-kind defaults, replacing any runtime path construction with an
// explicit table. Build it at startup; lookups afterwards are read-only.
type Registry struct {
	factories map[registryKey]Factory
	kinds     map[types.FieldKind]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[registryKey]Factory),
		kinds:     make(map[types.FieldKind]Factory),
	}
}

// Register binds a tenant-and-object-specific component factory
func (x *Registry) Register(tenant types.TenantID, object types.ObjectCode, component string, factory Factory) {
	x.factories[registryKey{Tenant: tenant, Object: object, Component: component}] = factory
}

// RegisterKind binds the default factory for a field kind
func (x *Registry) RegisterKind(kind types.FieldKind, factory Factory) {
	x.kinds[kind] = factory
}

// Lookup finds the factory for a component: the tenant-and-object override
// wins, then the kind default.
func (x *Registry) Lookup(tenant types.TenantID, object types.ObjectCode, component string, kind types.FieldKind) (Factory, error) {
	if f, ok := x.factories[registryKey{Tenant: tenant, Object: object, Component: component}]; ok {
		return f, nil
	}
	if f, ok := x.kinds[kind]; ok {
		return f, nil
	}
	return nil, goerr.Wrap(ErrNoRenderer, "no factory for component",
		goerr.V("tenant", tenant),
		goerr.V("object", object),
		goerr.V("component", component),
		goerr.V("kind", kind))
}

// NewDefaultRegistry builds the standard kind table. Dropdowns read their
// documents through the given accessor.
func NewDefaultRegistry(accessor *metadata.Accessor) *Registry {
	x := NewRegistry()

	x.RegisterKind(types.FieldKindText, func(desc *model.FieldDescriptor) Renderer {
		return NewText(desc)
	})
	x.RegisterKind(types.FieldKindNumber, func(desc *model.FieldDescriptor) Renderer {
		return NewNumber(desc)
	})
	x.RegisterKind(types.FieldKindDate, func(desc *model.FieldDescriptor) Renderer {
		return NewDateTime(types.FieldKindDate, desc)
	})
	x.RegisterKind(types.FieldKindTime, func(desc *model.FieldDescriptor) Renderer {
		return NewDateTime(types.FieldKindTime, desc)
	})
	x.RegisterKind(types.FieldKindDateTime, func(desc *model.FieldDescriptor) Renderer {
		return NewDateTime(types.FieldKindDateTime, desc)
	})
	x.RegisterKind(types.FieldKindDropdown, func(desc *model.FieldDescriptor) Renderer {
		return NewDropdown(desc, accessor)
	})

	return x
}
