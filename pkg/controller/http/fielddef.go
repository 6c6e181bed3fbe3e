package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/usecase"
	"github.com/vellum-crm/vellum/pkg/utils/errutil"
)

// getFieldHandler serves the resolved descriptor for (object, field)
func getFieldHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := tenantFrom(r.Context())
		object := types.ObjectCode(chi.URLParam(r, "object"))
		field := types.FieldCode(chi.URLParam(r, "field"))

		desc, err := uc.FieldDef.Resolve(r.Context(), entry.Tenant.ID, object, field)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusOf(err, http.StatusInternalServerError))
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, desc)
	}
}

// putFieldHandler stores an admin-edited descriptor. The addressing comes
// from the URL and the tenant scope, never from the payload.
func putFieldHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := tenantFrom(r.Context())
		object := types.ObjectCode(chi.URLParam(r, "object"))
		field := types.FieldCode(chi.URLParam(r, "field"))

		body, err := io.ReadAll(r.Body)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
			return
		}

		var desc model.FieldDescriptor
		if err := json.Unmarshal(body, &desc); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to parse descriptor"), http.StatusBadRequest)
			return
		}
		desc.Tenant = entry.Tenant.ID
		desc.Object = object
		desc.Field = field
		if err := desc.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		saved, err := uc.FieldDef.Save(r.Context(), entry.Tenant.ID, &desc)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusOf(err, http.StatusInternalServerError))
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, saved)
	}
}
