package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/interfaces"
	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// MetadataUseCase handles metadata document operations
type MetadataUseCase struct {
	repo     interfaces.Repository
	registry *model.TenantRegistry
}

// NewMetadataUseCase creates a new MetadataUseCase instance
func NewMetadataUseCase(repo interfaces.Repository, registry *model.TenantRegistry) *MetadataUseCase {
	return &MetadataUseCase{
		repo:     repo,
		registry: registry,
	}
}

func (uc *MetadataUseCase) checkAddress(tenant types.TenantID, path types.SourcePath) error {
	if _, err := uc.registry.Get(tenant); err != nil {
		return err
	}
	if path.IsEmpty() {
		return goerr.New("source path is required", goerr.V("tenant", tenant))
	}
	if err := path.Validate(); err != nil {
		return err
	}
	return nil
}

// Get returns the metadata document stored at path
func (uc *MetadataUseCase) Get(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error) {
	if err := uc.checkAddress(tenant, path); err != nil {
		return nil, err
	}
	return uc.repo.Metadata().Get(ctx, tenant, path)
}

// Replace validates doc and stores it as the full replacement for path,
// echoing the saved document. The previous content is discarded wholesale;
// there is no merge and the last write wins.
func (uc *MetadataUseCase) Replace(ctx context.Context, tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) (*metadoc.Document, error) {
	if err := uc.checkAddress(tenant, path); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, goerr.New("document is required",
			goerr.V("tenant", tenant),
			goerr.V("path", path))
	}
	if err := doc.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid document",
			goerr.V("tenant", tenant),
			goerr.V("path", path))
	}
	return uc.repo.Metadata().Put(ctx, tenant, path, doc)
}

// ListPaths returns every stored document path for the tenant, sorted
func (uc *MetadataUseCase) ListPaths(ctx context.Context, tenant types.TenantID) ([]types.SourcePath, error) {
	if _, err := uc.registry.Get(tenant); err != nil {
		return nil, err
	}
	return uc.repo.Metadata().ListPaths(ctx, tenant)
}
