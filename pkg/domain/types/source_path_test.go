package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

func TestSourcePath_Validate(t *testing.T) {
	tests := []struct {
		name    string
		path    types.SourcePath
		wantErr bool
	}{
		{name: "simple path", path: "Account/tier"},
		{name: "single segment", path: "globalPicklists"},
		{name: "nested path", path: "Account/custom/tier-levels"},
		{name: "empty path is valid but disabled", path: ""},
		{name: "leading slash", path: "/Account/tier", wantErr: true},
		{name: "trailing slash", path: "Account/tier/", wantErr: true},
		{name: "empty segment", path: "Account//tier", wantErr: true},
		{name: "relative segment", path: "Account/../tier", wantErr: true},
		{name: "invalid character", path: "Account/ti er", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.path.Validate()
			if tt.wantErr {
				gt.Value(t, err).NotNil()
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestSourcePath_IsEmpty(t *testing.T) {
	gt.B(t, types.SourcePath("").IsEmpty()).True()
	gt.B(t, types.SourcePath("Account/tier").IsEmpty()).False()
}
