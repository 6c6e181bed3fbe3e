package http

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/utils/errutil"
	"github.com/vellum-crm/vellum/pkg/utils/logging"
)

// TenantHeader carries the tenant scope of a request. Deployments with
// exactly one registered tenant may omit it.
const TenantHeader = "X-Tenant"

type ctxTenantKey struct{}

// tenantMiddleware resolves the request's tenant entry and stores it in the
// request context along with a tenant-scoped logger. A request without the
// header falls back to the sole registered tenant when exactly one is
// configured, otherwise it is rejected.
func tenantMiddleware(registry *model.TenantRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var entry *model.TenantEntry

			if header := r.Header.Get(TenantHeader); header != "" {
				e, err := registry.Get(types.TenantID(header))
				if err != nil {
					errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
					return
				}
				entry = e
			} else if sole, ok := registry.Sole(); ok {
				entry = sole
			} else {
				errutil.HandleHTTP(r.Context(), w,
					goerr.New("X-Tenant header is required"), http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), ctxTenantKey{}, entry)
			ctx = logging.With(ctx, logging.From(ctx).With("tenant", entry.Tenant.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tenantFrom returns the tenant entry resolved by tenantMiddleware
func tenantFrom(ctx context.Context) *model.TenantEntry {
	entry, _ := ctx.Value(ctxTenantKey{}).(*model.TenantEntry)
	return entry
}
