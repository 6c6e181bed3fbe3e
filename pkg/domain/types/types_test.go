package types_test

import (
	"testing"

	"github.com/vellum-crm/vellum/pkg/domain/types"
)

func TestTenantID_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      types.TenantID
		wantErr bool
	}{
		{"valid lowercase", "acme-corp", false},
		{"valid single word", "acme", false},
		{"valid with numbers", "tenant-123", false},
		{"empty", "", true},
		{"uppercase", "Acme-Corp", true},
		{"spaces", "acme corp", true},
		{"underscore", "acme_corp", true},
		{"starting with hyphen", "-acme", true},
		{"ending with hyphen", "acme-", true},
		{"double hyphen", "acme--corp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("TenantID.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestObjectCode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		code    types.ObjectCode
		wantErr bool
	}{
		{"valid lowercase", "account", false},
		{"valid capitalized", "Account", false},
		{"valid camel case", "salesOrder", false},
		{"valid with underscore", "sales_order", false},
		{"valid with digits", "account2", false},
		{"empty", "", true},
		{"starting with digit", "2account", true},
		{"hyphen", "sales-order", true},
		{"spaces", "sales order", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ObjectCode.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFieldCode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		code    types.FieldCode
		wantErr bool
	}{
		{"valid lowercase", "tier", false},
		{"valid camel case", "closeDate", false},
		{"valid with underscore", "close_date", false},
		{"empty", "", true},
		{"starting with digit", "1tier", true},
		{"hyphen", "close-date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("FieldCode.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRowID(t *testing.T) {
	seen := make(map[types.RowID]bool)
	for i := 0; i < 100; i++ {
		id := types.NewRowID()
		if id == "" {
			t.Fatal("NewRowID() returned empty ID")
		}
		if seen[id] {
			t.Fatalf("NewRowID() returned duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestRenderMode(t *testing.T) {
	for _, mode := range types.AllRenderModes() {
		if !mode.IsValid() {
			t.Errorf("RenderMode %q should be valid", mode)
		}
	}

	if types.RenderMode("print").IsValid() {
		t.Error("RenderMode \"print\" should be invalid")
	}

	if _, err := types.ParseRenderMode("edit"); err != nil {
		t.Errorf("ParseRenderMode(edit) error = %v", err)
	}
	if _, err := types.ParseRenderMode("hologram"); err == nil {
		t.Error("ParseRenderMode(hologram) should fail")
	}
}
