package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type descriptorRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDescriptorRepository(client *firestore.Client) *descriptorRepository {
	return &descriptorRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *descriptorRepository) descriptorsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_field_descriptors"
	}
	return "field_descriptors"
}

// docID joins the address with ':', which neither tenant IDs nor codes may
// contain.
func (r *descriptorRepository) docID(tenant types.TenantID, object types.ObjectCode, field types.FieldCode) string {
	return fmt.Sprintf("%s:%s:%s", tenant, object, field)
}

func (r *descriptorRepository) Get(ctx context.Context, tenant types.TenantID, object types.ObjectCode, field types.FieldCode) (*model.FieldDescriptor, error) {
	docSnap, err := r.client.Collection(r.descriptorsCollection()).Doc(r.docID(tenant, object, field)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrDescriptorNotFound, "descriptor not found",
				goerr.V("tenant", tenant), goerr.V("object", object), goerr.V("field", field))
		}
		return nil, goerr.Wrap(err, "failed to get field descriptor",
			goerr.V("tenant", tenant), goerr.V("object", object), goerr.V("field", field))
	}

	var desc model.FieldDescriptor
	if err := docSnap.DataTo(&desc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode field descriptor", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return &desc, nil
}

func (r *descriptorRepository) Save(ctx context.Context, tenant types.TenantID, desc *model.FieldDescriptor) (*model.FieldDescriptor, error) {
	saved := *desc
	saved.Tenant = tenant
	saved.UpdatedAt = time.Now().UTC()

	docID := r.docID(tenant, saved.Object, saved.Field)
	_, err := r.client.Collection(r.descriptorsCollection()).Doc(docID).Set(ctx, &saved)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save field descriptor",
			goerr.V("tenant", tenant),
			goerr.V("object", saved.Object),
			goerr.V("field", saved.Field))
	}

	return &saved, nil
}

func (r *descriptorRepository) ListByObject(ctx context.Context, tenant types.TenantID, object types.ObjectCode) ([]model.FieldDescriptor, error) {
	// Requires the (Tenant ASC, Object ASC, Field ASC) composite index from `vellum migrate`
	iter := r.client.Collection(r.descriptorsCollection()).
		Where("Tenant", "==", tenant).
		Where("Object", "==", object).
		OrderBy("Field", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	descs := make([]model.FieldDescriptor, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate field descriptors",
				goerr.V("tenant", tenant), goerr.V("object", object))
		}

		var desc model.FieldDescriptor
		if err := docSnap.DataTo(&desc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode field descriptor", goerr.V("doc_id", docSnap.Ref.ID))
		}

		descs = append(descs, desc)
	}

	return descs, nil
}
