package usecase

import (
	"github.com/vellum-crm/vellum/pkg/domain/interfaces"
	"github.com/vellum-crm/vellum/pkg/domain/model"
)

// UseCases bundles the application operations over one repository and the
// tenant registry built from the catalog files.
type UseCases struct {
	repo     interfaces.Repository
	registry *model.TenantRegistry

	Metadata *MetadataUseCase
	FieldDef *FieldDefUseCase
}

func New(repo interfaces.Repository, registry *model.TenantRegistry) *UseCases {
	return &UseCases{
		repo:     repo,
		registry: registry,
		Metadata: NewMetadataUseCase(repo, registry),
		FieldDef: NewFieldDefUseCase(repo, registry),
	}
}

// Registry returns the tenant registry
func (uc *UseCases) Registry() *model.TenantRegistry {
	return uc.registry
}
