package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// ValidationIssue represents a single inconsistency found during the
// repository consistency check
type ValidationIssue struct {
	Tenant   types.TenantID
	Object   types.ObjectCode
	Field    types.FieldCode
	Path     types.SourcePath
	Message  string
	Expected string
	Actual   string
}

// ValidationResult holds the results of repository validation
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateDB checks that every dropdown field descriptor points at a metadata
// document that actually exists, and that the document's root tag matches the
// descriptor's expected source type. Stored descriptor overrides take
// precedence over the catalog seeds, so the check runs against the merged
// view. It does NOT modify any data.
func (uc *UseCases) ValidateDB(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	for _, entry := range uc.registry.List() {
		tenantID := entry.Tenant.ID

		descs, err := uc.effectiveDescriptors(ctx, tenantID, entry)
		if err != nil {
			return nil, err
		}

		for _, desc := range descs {
			if desc.Kind != types.FieldKindDropdown || desc.SourcePath.IsEmpty() {
				continue
			}

			doc, err := uc.repo.Metadata().Get(ctx, tenantID, desc.SourcePath)
			if err != nil {
				if errors.Is(err, model.ErrDocumentNotFound) {
					result.AddIssue(ValidationIssue{
						Tenant:   tenantID,
						Object:   desc.Object,
						Field:    desc.Field,
						Path:     desc.SourcePath,
						Message:  "referenced metadata document does not exist",
						Expected: "stored document",
						Actual:   "<missing>",
					})
					continue
				}
				return nil, goerr.Wrap(err, "failed to get referenced document",
					goerr.V("tenant", tenantID),
					goerr.V("path", desc.SourcePath))
			}

			if desc.SourceType != "" && doc.Root != desc.SourceType {
				result.AddIssue(ValidationIssue{
					Tenant:   tenantID,
					Object:   desc.Object,
					Field:    desc.Field,
					Path:     desc.SourcePath,
					Message:  "document root tag does not match descriptor source type",
					Expected: desc.SourceType,
					Actual:   doc.Root,
				})
			}
		}
	}

	return result, nil
}

// effectiveDescriptors merges the catalog seeds with the stored overrides of
// every object the catalog declares. An override replaces the seed with the
// same (object, field); stored-only descriptors are appended.
func (uc *UseCases) effectiveDescriptors(ctx context.Context, tenantID types.TenantID, entry *model.TenantEntry) ([]model.FieldDescriptor, error) {
	merged := make([]model.FieldDescriptor, len(entry.Descriptors))
	copy(merged, entry.Descriptors)

	index := make(map[types.ObjectCode]map[types.FieldCode]int, len(merged))
	for i, d := range merged {
		if index[d.Object] == nil {
			index[d.Object] = make(map[types.FieldCode]int)
		}
		index[d.Object][d.Field] = i
	}

	for object := range index {
		stored, err := uc.repo.Descriptor().ListByObject(ctx, tenantID, object)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list stored descriptors",
				goerr.V("tenant", tenantID),
				goerr.V("object", object))
		}
		for _, d := range stored {
			if i, ok := index[object][d.Field]; ok {
				merged[i] = d
				continue
			}
			merged = append(merged, d)
		}
	}

	return merged, nil
}
