package http

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/usecase"
	"github.com/vellum-crm/vellum/pkg/utils/errutil"
	"github.com/vellum-crm/vellum/pkg/utils/safe"
)

// writeDocument renders the document in the wire convention
func writeDocument(ctx context.Context, w http.ResponseWriter, doc *metadoc.Document) {
	data, err := metadoc.Encode(doc)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to encode document"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(ctx, w, data)
}

// metadataPath extracts and checks the document path from the request URL
func metadataPath(r *http.Request) (types.SourcePath, error) {
	path := types.SourcePath(chi.URLParam(r, "*"))
	if path.IsEmpty() {
		return "", goerr.New("metadata path is required")
	}
	if err := path.Validate(); err != nil {
		return "", err
	}
	return path, nil
}

// getMetadataHandler serves a stored metadata document
func getMetadataHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := tenantFrom(r.Context())
		path, err := metadataPath(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		doc, err := uc.Metadata.Get(r.Context(), entry.Tenant.ID, path)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusOf(err, http.StatusInternalServerError))
			return
		}
		writeDocument(r.Context(), w, doc)
	}
}

// putMetadataHandler stores the request body as the full replacement
// document and echoes the saved copy.
func putMetadataHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := tenantFrom(r.Context())
		path, err := metadataPath(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
			return
		}
		doc, err := metadoc.Decode(body)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		if err := doc.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		saved, err := uc.Metadata.Replace(r.Context(), entry.Tenant.ID, path, doc)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusOf(err, http.StatusInternalServerError))
			return
		}
		writeDocument(r.Context(), w, saved)
	}
}
