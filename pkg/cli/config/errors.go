package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for catalog validation
var (
	ErrCatalogNotFound   = goerr.New("catalog file not found")
	ErrInvalidCatalog    = goerr.New("invalid catalog")
	ErrMissingTenant     = goerr.New("tenant section is required")
	ErrDuplicateTenantID = goerr.New("duplicate tenant ID")
	ErrDuplicateField    = goerr.New("duplicate field definition")
	ErrInvalidFieldKind  = goerr.New("invalid field kind")
	ErrMissingLabel      = goerr.New("field label is required")
	ErrMissingSource     = goerr.New("dropdown field requires a source path")
)

// Context keys for error values
const (
	CatalogPathKey = "catalog_path"
	TenantIDKey    = "tenant_id"
	ObjectCodeKey  = "object_code"
	FieldCodeKey   = "field_code"
	FieldKindKey   = "field_kind"
	FieldIndexKey  = "field_index"
)
