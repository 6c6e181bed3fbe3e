package firestore

import (
	"context"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type metadataRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMetadataRepository(client *firestore.Client) *metadataRepository {
	return &metadataRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *metadataRepository) documentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_metadata_documents"
	}
	return "metadata_documents"
}

// docID joins tenant and path with ':'. Tenant IDs cannot contain ':' and
// escaping removes '/', so the joined ID is collision free and a valid
// Firestore document name.
func (r *metadataRepository) docID(tenant types.TenantID, path types.SourcePath) string {
	return string(tenant) + ":" + url.PathEscape(string(path))
}

type metadataRecord struct {
	Tenant    types.TenantID
	Path      types.SourcePath
	Root      string
	Title     string
	Sorting   types.SortMode
	Rows      []metadoc.Row
	UpdatedAt time.Time
}

func newMetadataRecord(tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) *metadataRecord {
	copied := doc.Clone()
	return &metadataRecord{
		Tenant:    tenant,
		Path:      path,
		Root:      copied.Root,
		Title:     copied.Title,
		Sorting:   copied.Sorting,
		Rows:      copied.Rows,
		UpdatedAt: time.Now().UTC(),
	}
}

func (rec *metadataRecord) toDocument() *metadoc.Document {
	doc := &metadoc.Document{
		Root:    rec.Root,
		Title:   rec.Title,
		Sorting: rec.Sorting,
		Rows:    rec.Rows,
	}
	return doc.Clone()
}

func (r *metadataRepository) Get(ctx context.Context, tenant types.TenantID, path types.SourcePath) (*metadoc.Document, error) {
	docSnap, err := r.client.Collection(r.documentsCollection()).Doc(r.docID(tenant, path)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrDocumentNotFound, "document not found",
				goerr.V("tenant", tenant), goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to get metadata document",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}

	var rec metadataRecord
	if err := docSnap.DataTo(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode metadata document", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return rec.toDocument(), nil
}

func (r *metadataRepository) Put(ctx context.Context, tenant types.TenantID, path types.SourcePath, doc *metadoc.Document) (*metadoc.Document, error) {
	rec := newMetadataRecord(tenant, path, doc)

	_, err := r.client.Collection(r.documentsCollection()).Doc(r.docID(tenant, path)).Set(ctx, rec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save metadata document",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}

	return rec.toDocument(), nil
}

func (r *metadataRepository) Delete(ctx context.Context, tenant types.TenantID, path types.SourcePath) error {
	docRef := r.client.Collection(r.documentsCollection()).Doc(r.docID(tenant, path))

	// Deleting a missing document is not an error in Firestore, so check
	// existence first to keep parity with the in-memory backend.
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrDocumentNotFound, "document not found",
				goerr.V("tenant", tenant), goerr.V("path", path))
		}
		return goerr.Wrap(err, "failed to get metadata document for deletion",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete metadata document",
			goerr.V("tenant", tenant), goerr.V("path", path))
	}

	return nil
}

func (r *metadataRepository) ListPaths(ctx context.Context, tenant types.TenantID) ([]types.SourcePath, error) {
	// Requires the (Tenant ASC, Path ASC) composite index from `vellum migrate`
	iter := r.client.Collection(r.documentsCollection()).
		Where("Tenant", "==", tenant).
		OrderBy("Path", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	paths := make([]types.SourcePath, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate metadata documents", goerr.V("tenant", tenant))
		}

		var rec metadataRecord
		if err := docSnap.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode metadata document", goerr.V("doc_id", docSnap.Ref.ID))
		}

		paths = append(paths, rec.Path)
	}

	return paths, nil
}
