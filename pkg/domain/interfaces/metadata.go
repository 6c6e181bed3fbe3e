package interfaces

import (
	"context"

	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// MetadataRepository defines the interface for metadata document access.
// Documents are addressed by (tenant, source path) and written only as full
// replacements; there is no partial update and the last write wins.
type MetadataRepository interface {
	// Get retrieves the document stored at the given path. Returns an error
	// wrapping model.ErrDocumentNotFound when no document exists.
	Get(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error)

	// Put stores the document at the given path, replacing any previous
	// content wholesale, and returns the saved document.
	Put(ctx context.Context, tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) (*metadoc.Document, error)

	// Delete removes the document at the given path
	Delete(ctx context.Context, tenant types.TenantID, path types.SourcePath) error

	// ListPaths returns every stored document path for the tenant, sorted
	ListPaths(ctx context.Context, tenant types.TenantID) ([]types.SourcePath, error)
}
