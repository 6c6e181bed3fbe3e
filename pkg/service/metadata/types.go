package metadata

import (
	"context"

	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// Source fetches metadata documents from wherever they live, a repository
// backend or the REST API.
type Source interface {
	Fetch(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error)
}

// Saver writes metadata documents back as full replacements and returns the
// saved document.
type Saver interface {
	Save(ctx context.Context, tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) (*metadoc.Document, error)
}
