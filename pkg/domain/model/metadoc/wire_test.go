package metadoc_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

func TestDecode(t *testing.T) {
	data := []byte(`{
		"dropdownList": {
			"customValue": [
				{"label": ["Gold"], "code": ["gold"], "default": ["true"], "iconSet": ["material"], "icon": ["star"]},
				{"label": ["Silver"], "code": ["silver"], "default": ["false"], "iconSet": [""], "icon": [""]}
			],
			"title": ["Tier"],
			"sorting": ["alpha"]
		}
	}`)

	doc, err := metadoc.Decode(data)
	gt.NoError(t, err).Required()

	gt.Value(t, doc.Root).Equal("dropdownList")
	gt.Value(t, doc.Title).Equal("Tier")
	gt.Value(t, doc.Sorting).Equal(types.SortModeAlpha)
	gt.A(t, doc.Rows).Length(2)
	gt.Value(t, doc.Rows[0].Label).Equal("Gold")
	gt.Value(t, doc.Rows[0].Code).Equal("gold")
	gt.B(t, doc.Rows[0].IsDefault()).True()
	gt.Value(t, doc.Rows[0].IconSet).Equal("material")
	gt.Value(t, doc.Rows[1].Label).Equal("Silver")
	gt.B(t, doc.Rows[1].IsDefault()).False()

	// Temporary identifiers are assigned by editing sessions, not the codec
	gt.Value(t, doc.Rows[0].ID).Equal(types.RowID(""))
}

func TestDecode_SingleRowNotWrapped(t *testing.T) {
	// A lone row arrives as a bare object, an artifact of XML-to-JSON
	// conversion. It must normalize into a one-element collection.
	data := []byte(`{
		"dropdownList": {
			"customValue": {"label": ["Only"], "code": ["only"], "default": ["false"], "iconSet": [""], "icon": [""]}
		}
	}`)

	doc, err := metadoc.Decode(data)
	gt.NoError(t, err).Required()
	gt.A(t, doc.Rows).Length(1)
	gt.Value(t, doc.Rows[0].Label).Equal("Only")
}

func TestDecode_Defaults(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "absent fields",
			data: `{"dropdownList": {"customValue": [{"label": ["Bare"]}]}}`,
		},
		{
			name: "bare string leaves",
			data: `{"dropdownList": {"customValue": [{"label": "Bare"}], "title": []}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := metadoc.Decode([]byte(tt.data))
			gt.NoError(t, err).Required()

			gt.Value(t, doc.Title).Equal("")
			gt.Value(t, doc.Sorting).Equal(types.SortModeManual)
			gt.A(t, doc.Rows).Length(1)
			gt.Value(t, doc.Rows[0].Label).Equal("Bare")
			gt.Value(t, doc.Rows[0].Code).Equal("")
			gt.Value(t, doc.Rows[0].Default).Equal(metadoc.BoolFalse)
		})
	}
}

func TestDecode_EmptyRowCollection(t *testing.T) {
	doc, err := metadoc.Decode([]byte(`{"dropdownList": {"title": ["Empty"]}}`))
	gt.NoError(t, err).Required()
	gt.A(t, doc.Rows).Length(0)
	gt.Value(t, doc.Title).Equal("Empty")
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not JSON", data: `<dropdownList/>`},
		{name: "no root tag", data: `{}`},
		{name: "two root tags", data: `{"a": {}, "b": {}}`},
		{name: "numeric leaf", data: `{"dropdownList": {"title": [42]}}`},
		{name: "unknown sorting", data: `{"dropdownList": {"sorting": ["reversed"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := metadoc.Decode([]byte(tt.data))
			gt.Error(t, err)
		})
	}
}

func TestEncode_WireConvention(t *testing.T) {
	doc := &metadoc.Document{
		Root:  "dropdownList",
		Title: "Tier",
		Rows: []metadoc.Row{
			{ID: types.NewRowID(), Label: "Gold", Code: "gold", Default: "false"},
		},
	}

	data, err := metadoc.Encode(doc)
	gt.NoError(t, err).Required()

	// Every scalar leaf is a one-element string array; the temporary row
	// identifier never reaches the wire; default-valued document-level
	// fields (sorting=manual here) are omitted.
	want := `{"dropdownList":{"customValue":[{"label":["Gold"],"code":["gold"],"default":["false"],"iconSet":[""],"icon":[""]}],"title":["Tier"]}}`
	gt.S(t, string(data)).Equal(want)
}

func TestEncode_OmitsDefaultDocumentFields(t *testing.T) {
	doc := metadoc.New("dropdownList")
	data, err := metadoc.Encode(doc)
	gt.NoError(t, err).Required()
	gt.S(t, string(data)).Equal(`{"dropdownList":{}}`)

	doc.Sorting = types.SortModeAlpha
	data, err = metadoc.Encode(doc)
	gt.NoError(t, err).Required()
	gt.S(t, string(data)).Equal(`{"dropdownList":{"sorting":["alpha"]}}`)
}

func TestEncode_RequiresRoot(t *testing.T) {
	_, err := metadoc.Encode(&metadoc.Document{})
	gt.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	original := []byte(`{"statusList":{"customValue":[{"label":["Open"],"code":["open"],"default":["true"],"iconSet":[""],"icon":[""]}],"title":["Status"],"sorting":["alpha"]}}`)

	doc, err := metadoc.Decode(original)
	gt.NoError(t, err).Required()
	encoded, err := metadoc.Encode(doc)
	gt.NoError(t, err).Required()

	var a, b any
	gt.NoError(t, json.Unmarshal(original, &a)).Required()
	gt.NoError(t, json.Unmarshal(encoded, &b)).Required()
	gt.Value(t, b).Equal(a)
}
