package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

func TestFieldKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind types.FieldKind
		want bool
	}{
		{name: "valid text", kind: types.FieldKindText, want: true},
		{name: "valid number", kind: types.FieldKindNumber, want: true},
		{name: "valid date", kind: types.FieldKindDate, want: true},
		{name: "valid time", kind: types.FieldKindTime, want: true},
		{name: "valid datetime", kind: types.FieldKindDateTime, want: true},
		{name: "valid dropdown", kind: types.FieldKindDropdown, want: true},
		{name: "invalid kind", kind: types.FieldKind("picklist"), want: false},
		{name: "empty kind", kind: types.FieldKind(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.kind.IsValid()).True()
			} else {
				gt.B(t, tt.kind.IsValid()).False()
			}
		})
	}
}

func TestAllFieldKinds(t *testing.T) {
	kinds := types.AllFieldKinds()
	gt.A(t, kinds).Length(6)

	for _, kind := range kinds {
		gt.B(t, kind.IsValid()).
			Describef("field kind %s should be valid", kind).
			True()
	}
}

func TestParseFieldKind(t *testing.T) {
	kind, err := types.ParseFieldKind("dropdown")
	gt.NoError(t, err)
	gt.Value(t, kind).Equal(types.FieldKindDropdown)

	_, err = types.ParseFieldKind("select")
	gt.Value(t, err).NotNil()
}
