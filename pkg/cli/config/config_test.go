package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/cli/config"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

func TestLoadCatalog(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "valid catalog with all field kinds",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "name"
kind = "text"
label = "Account Name"
placeholder = "Enter account name"
help = "The legal name of the account"

[[fields]]
object = "account"
field = "revenue"
kind = "number"
label = "Annual Revenue"
decimal_places = 2
allow_search = true

[[fields]]
object = "account"
field = "founded"
kind = "date"
label = "Founded"
format = "2006-01-02"

[[fields]]
object = "contact"
field = "lastCall"
kind = "datetime"
label = "Last Call"

[[fields]]
object = "contact"
field = "callWindow"
kind = "time"
label = "Call Window"

[[fields]]
object = "account"
field = "tier"
kind = "dropdown"
label = "Tier"
source = "account/tier/options"
source_type = "dropdownList"

  [fields.test_ids]
  edit = "tier-edit"
  view = "tier-view"
  table = "tier-cell"
`,
			wantErr: nil,
		},
		{
			name:    "catalog file not found",
			content: "", // Won't create the file
			wantErr: config.ErrCatalogNotFound,
		},
		{
			name: "malformed TOML",
			content: `
[tenant
id = "acme"
`,
			wantErr: config.ErrInvalidCatalog,
		},
		{
			name: "missing tenant section",
			content: `
[[fields]]
object = "account"
field = "name"
kind = "text"
label = "Account Name"
`,
			wantErr: config.ErrMissingTenant,
		},
		{
			name: "missing tenant name",
			content: `
[tenant]
id = "acme"

[[fields]]
object = "account"
field = "name"
kind = "text"
label = "Account Name"
`,
			wantErr: config.ErrMissingTenant,
		},
		{
			name: "duplicate field definition",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "tier"
kind = "text"
label = "Tier"

[[fields]]
object = "account"
field = "tier"
kind = "number"
label = "Tier Again"
`,
			wantErr: config.ErrDuplicateField,
		},
		{
			name: "invalid field kind",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "tier"
kind = "hologram"
label = "Tier"
`,
			wantErr: config.ErrInvalidFieldKind,
		},
		{
			name: "missing field label",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "tier"
kind = "text"
`,
			wantErr: config.ErrMissingLabel,
		},
		{
			name: "dropdown field without source",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "tier"
kind = "dropdown"
label = "Tier"
`,
			wantErr: config.ErrMissingSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			catalogPath := filepath.Join(tmpDir, "catalog.toml")

			// Only create file if content is not empty
			if tt.content != "" {
				err := os.WriteFile(catalogPath, []byte(tt.content), 0o600)
				gt.NoError(t, err).Required()
			}

			catalog, err := config.LoadCatalog(catalogPath)

			if tt.wantErr != nil {
				gt.Value(t, err).NotNil()
				if err != nil {
					gt.Error(t, err).Is(tt.wantErr)
				}
				return
			}

			gt.NoError(t, err)
			if err != nil {
				return
			}

			gt.Value(t, catalog).NotNil()
		})
	}
}

func TestLoadCatalog_InvalidIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "uppercase tenant ID",
			content: `
[tenant]
id = "Acme"
name = "Acme Corp"
`,
		},
		{
			name: "object code starting with a digit",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "1account"
field = "name"
kind = "text"
label = "Name"
`,
		},
		{
			name: "field code with hyphen",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "account-name"
kind = "text"
label = "Name"
`,
		},
		{
			name: "source path with parent segment",
			content: `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "tier"
kind = "dropdown"
label = "Tier"
source = "../escape/options"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			catalogPath := filepath.Join(tmpDir, "catalog.toml")
			err := os.WriteFile(catalogPath, []byte(tt.content), 0o600)
			gt.NoError(t, err).Required()

			_, err = config.LoadCatalog(catalogPath)
			gt.Value(t, err).NotNil()
		})
	}
}

func TestLoadCatalog_DescriptorConversion(t *testing.T) {
	content := `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "revenue"
kind = "number"
label = "Annual Revenue"
decimal_places = 2
allow_search = true

[[fields]]
object = "account"
field = "score"
kind = "number"
label = "Score"

[[fields]]
object = "account"
field = "tier"
kind = "dropdown"
label = "Tier"
source = "account/tier/options"
source_type = "dropdownList"

  [fields.test_ids]
  edit = "tier-edit"
  view = "tier-view"
  table = "tier-cell"
`

	tmpDir := t.TempDir()
	catalogPath := filepath.Join(tmpDir, "catalog.toml")
	err := os.WriteFile(catalogPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	catalog, err := config.LoadCatalog(catalogPath)
	gt.NoError(t, err).Required()

	gt.Value(t, catalog.Tenant.ID).Equal("acme")
	gt.Value(t, catalog.Tenant.Name).Equal("Acme Corp")
	gt.Array(t, catalog.Fields).Length(3).Required()

	entry := catalog.ToEntry()
	gt.Value(t, entry.Tenant.ID).Equal(types.TenantID("acme"))
	gt.Array(t, entry.Descriptors).Length(3).Required()

	revenue := entry.Descriptors[0]
	gt.Value(t, revenue.Object).Equal(types.ObjectCode("account"))
	gt.Value(t, revenue.Field).Equal(types.FieldCode("revenue"))
	gt.Value(t, revenue.Kind).Equal(types.FieldKindNumber)
	gt.Value(t, revenue.DecimalPlaces).Equal(2)
	gt.Bool(t, revenue.AllowSearch).True()

	// An absent decimal_places key means no fixed precision, not zero places
	score := entry.Descriptors[1]
	gt.Value(t, score.DecimalPlaces).Equal(-1)

	tier := entry.Descriptors[2]
	gt.Value(t, tier.Kind).Equal(types.FieldKindDropdown)
	gt.Value(t, tier.SourcePath).Equal(types.SourcePath("account/tier/options"))
	gt.Value(t, tier.SourceType).Equal("dropdownList")
	gt.Value(t, tier.TestIDs.Edit).Equal("tier-edit")
	gt.Value(t, tier.TestIDs.View).Equal("tier-view")
	gt.Value(t, tier.TestIDs.Table).Equal("tier-cell")
}

func TestAppConfig_DirectoryAndDuplicates(t *testing.T) {
	acme := `
[tenant]
id = "acme"
name = "Acme Corp"

[[fields]]
object = "account"
field = "name"
kind = "text"
label = "Account Name"
`
	globex := `
[tenant]
id = "globex"
name = "Globex"

[[fields]]
object = "deal"
field = "stage"
kind = "text"
label = "Stage"
`

	t.Run("a directory loads every catalog inside", func(t *testing.T) {
		tmpDir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(tmpDir, "acme.toml"), []byte(acme), 0o600)).Required()
		gt.NoError(t, os.WriteFile(filepath.Join(tmpDir, "globex.toml"), []byte(globex), 0o600)).Required()

		appCfg := config.NewAppConfigForTest([]string{tmpDir})
		catalogs, registry, err := appCfg.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, catalogs).Length(2)
		gt.Array(t, registry.Tenants()).Length(2)
	})

	t.Run("the same tenant in two files is rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(tmpDir, "one.toml"), []byte(acme), 0o600)).Required()
		gt.NoError(t, os.WriteFile(filepath.Join(tmpDir, "two.toml"), []byte(acme), 0o600)).Required()

		appCfg := config.NewAppConfigForTest([]string{tmpDir})
		_, _, err := appCfg.Configure()
		gt.Error(t, err).Is(config.ErrDuplicateTenantID)
	})

	t.Run("an empty directory is rejected", func(t *testing.T) {
		appCfg := config.NewAppConfigForTest([]string{t.TempDir()})
		_, _, err := appCfg.Configure()
		gt.Error(t, err).Is(config.ErrCatalogNotFound)
	})
}
