package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

type metadataKey struct {
	Tenant types.TenantID
	Path   types.SourcePath
}

type metadataRepository struct {
	mu   sync.RWMutex
	docs map[metadataKey]*metadoc.Document
}

func newMetadataRepository() *metadataRepository {
	return &metadataRepository{
		docs: make(map[metadataKey]*metadoc.Document),
	}
}

func (r *metadataRepository) Get(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[metadataKey{Tenant: tenant, Path: path}]
	if !ok {
		return nil, goerr.Wrap(model.ErrDocumentNotFound, "document not found",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}

	return doc.Clone(), nil
}

func (r *metadataRepository) Put(ctx context.Context, tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) (*metadoc.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Clone on the way in and out so callers never share row slices with
	// the stored copy.
	saved := doc.Clone()
	r.docs[metadataKey{Tenant: tenant, Path: path}] = saved

	return saved.Clone(), nil
}

func (r *metadataRepository) Delete(ctx context.Context, tenant types.TenantID, path types.SourcePath) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metadataKey{Tenant: tenant, Path: path}
	if _, ok := r.docs[key]; !ok {
		return goerr.Wrap(model.ErrDocumentNotFound, "document not found",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}
	delete(r.docs, key)

	return nil
}

func (r *metadataRepository) ListPaths(ctx context.Context, tenant types.TenantID) ([]types.SourcePath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]types.SourcePath, 0)
	for key := range r.docs {
		if key.Tenant == tenant {
			paths = append(paths, key.Path)
		}
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths, nil
}
