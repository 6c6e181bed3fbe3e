package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// ExportSink receives one wire-encoded document per stored path. Implementations
// write to a local directory, a GCS bucket, or a test collector.
type ExportSink interface {
	Put(ctx context.Context, tenant types.TenantID, path types.SourcePath, data []byte) error
}

// ExportSummary reports what an export run wrote
type ExportSummary struct {
	Tenants   int
	Documents int
}

// Export snapshots every tenant's metadata documents through the sink, one
// goroutine per tenant. Documents are encoded in the exact wire convention, so
// an exported file can be PUT back through the API unchanged.
func (uc *UseCases) Export(ctx context.Context, sink ExportSink) (*ExportSummary, error) {
	entries := uc.registry.List()

	var mu sync.Mutex
	summary := &ExportSummary{Tenants: len(entries)}

	eg, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		tenantID := entry.Tenant.ID
		eg.Go(func() error {
			paths, err := uc.repo.Metadata().ListPaths(ctx, tenantID)
			if err != nil {
				return goerr.Wrap(err, "failed to list document paths",
					goerr.V("tenant", tenantID))
			}

			for _, path := range paths {
				doc, err := uc.repo.Metadata().Get(ctx, tenantID, path)
				if err != nil {
					return goerr.Wrap(err, "failed to get document",
						goerr.V("tenant", tenantID), goerr.V("path", path))
				}

				data, err := metadoc.Encode(doc)
				if err != nil {
					return goerr.Wrap(err, "failed to encode document",
						goerr.V("tenant", tenantID), goerr.V("path", path))
				}

				if err := sink.Put(ctx, tenantID, path, data); err != nil {
					return goerr.Wrap(err, "failed to write document",
						goerr.V("tenant", tenantID), goerr.V("path", path))
				}

				mu.Lock()
				summary.Documents++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return summary, nil
}
