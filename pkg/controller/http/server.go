package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/usecase"
	"github.com/vellum-crm/vellum/pkg/utils/errutil"
	"github.com/vellum-crm/vellum/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()
	s := &Server{router: r}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	// Tenant listing carries no tenant scope of its own
	r.Get("/api/tenants", tenantsHandler(uc.Registry()))

	// Tenant-scoped API
	r.Group(func(r chi.Router) {
		r.Use(tenantMiddleware(uc.Registry()))

		r.Get("/api/metadata/*", getMetadataHandler(uc))
		r.Put("/api/metadata/*", putMetadataHandler(uc))
		r.Get("/api/fields/{object}/{field}", getFieldHandler(uc))
		r.Put("/api/fields/{object}/{field}", putFieldHandler(uc))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// tenantsHandler returns a handler that serves the tenant list as JSON in
// registration order.
func tenantsHandler(registry *model.TenantRegistry) http.HandlerFunc {
	type tenantResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type response struct {
		Tenants []tenantResponse `json:"tenants"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tenants := registry.Tenants()
		resp := response{
			Tenants: make([]tenantResponse, len(tenants)),
		}
		for i, tenant := range tenants {
			resp.Tenants[i] = tenantResponse{
				ID:   tenant.ID.String(),
				Name: tenant.Name,
			}
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// statusOf maps the domain's not-found sentinels to 404 and keeps the call
// site's fallback for everything else.
func statusOf(err error, fallback int) int {
	if errors.Is(err, model.ErrDocumentNotFound) ||
		errors.Is(err, model.ErrDescriptorNotFound) ||
		errors.Is(err, model.ErrTenantNotFound) {
		return http.StatusNotFound
	}
	return fallback
}
