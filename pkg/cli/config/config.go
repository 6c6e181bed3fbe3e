package config

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// Catalog is one tenant's configuration file: the tenant identity plus the
// seed field descriptors its CRM objects start with. Admin edits stored in
// the repository override these seeds at resolve time.
type Catalog struct {
	Tenant TenantSection `toml:"tenant"`
	Fields []FieldDef    `toml:"fields"`
}

// TenantSection identifies the tenant a catalog file belongs to
type TenantSection struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the TenantSection is valid
func (t *TenantSection) Validate() error {
	if t.ID == "" && t.Name == "" {
		return goerr.Wrap(ErrMissingTenant, "tenant id and name are required")
	}
	id := types.TenantID(t.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid tenant ID", goerr.V(TenantIDKey, t.ID))
	}
	if t.Name == "" {
		return goerr.Wrap(ErrMissingTenant, "tenant name is required", goerr.V(TenantIDKey, t.ID))
	}
	return nil
}

// FieldDef declares one seed field descriptor. DecimalPlaces is a pointer so
// an absent key means "no fixed precision" rather than zero places.
type FieldDef struct {
	Object        string  `toml:"object"`
	Field         string  `toml:"field"`
	Kind          string  `toml:"kind"`
	Label         string  `toml:"label"`
	Placeholder   string  `toml:"placeholder"`
	HelpText      string  `toml:"help"`
	Format        string  `toml:"format"`
	DecimalPlaces *int    `toml:"decimal_places"`
	AllowSearch   bool    `toml:"allow_search"`
	Source        string  `toml:"source"`
	SourceType    string  `toml:"source_type"`
	TestIDs       TestIDs `toml:"test_ids"`
}

// TestIDs holds the per-mode data-test identifiers of a field
type TestIDs struct {
	Edit  string `toml:"edit"`
	View  string `toml:"view"`
	Table string `toml:"table"`
}

// Validate checks if the FieldDef is valid
func (f *FieldDef) Validate() error {
	object := types.ObjectCode(f.Object)
	if err := object.Validate(); err != nil {
		return goerr.Wrap(err, "invalid object code", goerr.V(ObjectCodeKey, f.Object))
	}
	field := types.FieldCode(f.Field)
	if err := field.Validate(); err != nil {
		return goerr.Wrap(err, "invalid field code",
			goerr.V(ObjectCodeKey, f.Object), goerr.V(FieldCodeKey, f.Field))
	}
	kind, err := types.ParseFieldKind(f.Kind)
	if err != nil {
		return goerr.Wrap(ErrInvalidFieldKind, "unknown field kind",
			goerr.V(ObjectCodeKey, f.Object),
			goerr.V(FieldCodeKey, f.Field),
			goerr.V(FieldKindKey, f.Kind))
	}
	if f.Label == "" {
		return goerr.Wrap(ErrMissingLabel, "label is required",
			goerr.V(ObjectCodeKey, f.Object), goerr.V(FieldCodeKey, f.Field))
	}
	if kind == types.FieldKindDropdown && f.Source == "" {
		return goerr.Wrap(ErrMissingSource, "dropdown field has no source",
			goerr.V(ObjectCodeKey, f.Object), goerr.V(FieldCodeKey, f.Field))
	}
	source := types.SourcePath(f.Source)
	if err := source.Validate(); err != nil {
		return goerr.Wrap(err, "invalid field source path",
			goerr.V(ObjectCodeKey, f.Object), goerr.V(FieldCodeKey, f.Field))
	}
	return nil
}

// ToDescriptor converts the definition to a domain field descriptor for the
// given tenant.
func (f *FieldDef) ToDescriptor(tenant types.TenantID) model.FieldDescriptor {
	places := -1
	if f.DecimalPlaces != nil {
		places = *f.DecimalPlaces
	}
	return model.FieldDescriptor{
		Tenant:        tenant,
		Object:        types.ObjectCode(f.Object),
		Field:         types.FieldCode(f.Field),
		Kind:          types.FieldKind(f.Kind),
		Label:         f.Label,
		Placeholder:   f.Placeholder,
		HelpText:      f.HelpText,
		Format:        f.Format,
		DecimalPlaces: places,
		AllowSearch:   f.AllowSearch,
		SourcePath:    types.SourcePath(f.Source),
		SourceType:    f.SourceType,
		TestIDs: model.TestIDs{
			Edit:  f.TestIDs.Edit,
			View:  f.TestIDs.View,
			Table: f.TestIDs.Table,
		},
	}
}

// Validate checks if the Catalog is valid
func (c *Catalog) Validate() error {
	if err := c.Tenant.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Fields))
	for i, field := range c.Fields {
		if err := field.Validate(); err != nil {
			return goerr.Wrap(err, "invalid field definition", goerr.V(FieldIndexKey, i))
		}
		key := field.Object + "." + field.Field
		if seen[key] {
			return goerr.Wrap(ErrDuplicateField, "field is defined twice",
				goerr.V(ObjectCodeKey, field.Object),
				goerr.V(FieldCodeKey, field.Field))
		}
		seen[key] = true
	}
	return nil
}

// ToEntry converts the catalog to a tenant registry entry
func (c *Catalog) ToEntry() *model.TenantEntry {
	tenant := types.TenantID(c.Tenant.ID)
	descriptors := make([]model.FieldDescriptor, len(c.Fields))
	for i, field := range c.Fields {
		descriptors[i] = field.ToDescriptor(tenant)
	}
	return &model.TenantEntry{
		Tenant:      model.Tenant{ID: tenant, Name: c.Tenant.Name},
		Descriptors: descriptors,
	}
}

// LoadCatalog loads and validates one tenant catalog from a TOML file
func LoadCatalog(path string) (*Catalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrCatalogNotFound, "no such catalog file", goerr.V(CatalogPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(CatalogPathKey, path))
	}

	var catalog Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(ErrInvalidCatalog, "failed to parse TOML catalog",
			goerr.V(CatalogPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V(CatalogPathKey, path))
	}

	return &catalog, nil
}

// AppConfig holds CLI flags for the tenant catalog files
type AppConfig struct {
	catalogPaths []string
}

// Flags returns CLI flags for catalog configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "catalog",
			Usage:       "Tenant catalog TOML file (repeatable, one file per tenant)",
			Required:    true,
			Sources:     cli.EnvVars("VELLUM_CATALOG"),
			Destination: &a.catalogPaths,
		},
	}
}

// Configure loads every catalog file and builds the tenant registry. A path
// naming a directory loads every *.toml file inside it. Tenant IDs must be
// unique across all catalog files.
func (a *AppConfig) Configure() ([]*Catalog, *model.TenantRegistry, error) {
	if len(a.catalogPaths) == 0 {
		return nil, nil, goerr.New("at least one catalog file is required")
	}

	paths, err := a.resolvePaths()
	if err != nil {
		return nil, nil, err
	}

	registry := model.NewTenantRegistry()
	catalogs := make([]*Catalog, 0, len(paths))
	seen := make(map[string]string, len(paths))

	for _, path := range paths {
		catalog, err := LoadCatalog(path)
		if err != nil {
			return nil, nil, err
		}

		if prev, ok := seen[catalog.Tenant.ID]; ok {
			return nil, nil, goerr.Wrap(ErrDuplicateTenantID, "tenant is declared in two catalogs",
				goerr.V(TenantIDKey, catalog.Tenant.ID),
				goerr.V(CatalogPathKey, path),
				goerr.V("previous_path", prev))
		}
		seen[catalog.Tenant.ID] = path

		catalogs = append(catalogs, catalog)
		registry.Register(catalog.ToEntry())
	}

	return catalogs, registry, nil
}

// resolvePaths expands directory arguments into their *.toml files, in
// lexical order.
func (a *AppConfig) resolvePaths() ([]string, error) {
	var paths []string
	for _, p := range a.catalogPaths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, goerr.Wrap(ErrCatalogNotFound, "no such catalog path", goerr.V(CatalogPathKey, p))
			}
			return nil, goerr.Wrap(err, "failed to stat catalog path", goerr.V(CatalogPathKey, p))
		}
		if !info.IsDir() {
			paths = append(paths, p)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(p, "*.toml"))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list catalog directory", goerr.V(CatalogPathKey, p))
		}
		if len(matches) == 0 {
			return nil, goerr.Wrap(ErrCatalogNotFound, "catalog directory has no TOML files", goerr.V(CatalogPathKey, p))
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
