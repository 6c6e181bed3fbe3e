package metadata

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/interfaces"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// RepositorySource adapts a repository backend as a document source and
// saver, for embedding the accessor server side without an HTTP hop.
type RepositorySource struct {
	repo interfaces.Repository
}

var (
	_ Source = &RepositorySource{}
	_ Saver  = &RepositorySource{}
)

// NewRepositorySource creates a source backed by the given repository
func NewRepositorySource(repo interfaces.Repository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (x *RepositorySource) Fetch(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error) {
	return x.repo.Metadata().Get(ctx, tenant, path)
}

func (x *RepositorySource) Save(ctx context.Context, tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) (*metadoc.Document, error) {
	if err := doc.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid metadata document",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}

	return x.repo.Metadata().Put(ctx, tenant, path, doc)
}
