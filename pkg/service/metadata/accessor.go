package metadata

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

type cacheKey struct {
	Tenant types.TenantID
	Path   types.SourcePath
}

// Accessor serves metadata documents from a Source with an explicit
// per-instance cache keyed by (tenant, path). There is no process-wide
// cache; every consumer owns its accessor and its staleness.
type Accessor struct {
	source  Source
	enabled bool

	mu    sync.RWMutex
	cache map[cacheKey]*metadoc.Document
}

// Option is a functional option for accessor configuration
type Option func(*Accessor)

// WithEnabled toggles fetching. A disabled accessor never touches its
// source and reports ErrDisabled from Get.
func WithEnabled(enabled bool) Option {
	return func(x *Accessor) {
		x.enabled = enabled
	}
}

// NewAccessor creates an accessor over the given source
func NewAccessor(source Source, opts ...Option) *Accessor {
	x := &Accessor{
		source:  source,
		enabled: true,
		cache:   make(map[cacheKey]*metadoc.Document),
	}

	for _, opt := range opts {
		opt(x)
	}

	return x
}

// Get returns the document at (tenant, path), fetching it at most once per
// path until invalidated. A failed fetch caches nothing; an empty path or a
// disabled accessor returns ErrDisabled without fetching.
func (x *Accessor) Get(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error) {
	if !x.enabled || path.IsEmpty() {
		return nil, goerr.Wrap(ErrDisabled, "metadata not loaded",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}

	key := cacheKey{Tenant: tenant, Path: path}

	x.mu.RLock()
	cached, ok := x.cache[key]
	x.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	doc, err := x.source.Fetch(ctx, tenant, path)
	if err != nil {
		return nil, err
	}

	x.mu.Lock()
	x.cache[key] = doc.Clone()
	x.mu.Unlock()

	return doc, nil
}

// Store replaces the cached copy wholesale, typically after a successful
// save so the next Get sees the just-written document without a fetch.
func (x *Accessor) Store(tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) {
	if path.IsEmpty() {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.cache[cacheKey{Tenant: tenant, Path: path}] = doc.Clone()
}

// Invalidate drops the cached copy so the next Get fetches again
func (x *Accessor) Invalidate(tenant types.TenantID, path types.SourcePath) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.cache, cacheKey{Tenant: tenant, Path: path})
}
