package metadoc

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// ErrMalformedDocument is returned when a wire payload does not follow the
// XML-shape JSON convention.
var ErrMalformedDocument = goerr.New("malformed metadata document")

// Wire format: the external consumer expects XML-shape JSON, i.e. the exact
// object a generic XML-to-JSON converter produces. Every scalar leaf is a
// one-element array of strings, rows live under "customValue", and the whole
// body sits under a single root tag. This convention must be reproduced
// exactly on write; on read we additionally accept the converter's two known
// ambiguities (a lone row not wrapped in an array, a bare string leaf) and
// normalize them away so no consumer above this package ever sees them.

const (
	wireRowKey     = "customValue"
	wireTitleKey   = "title"
	wireSortingKey = "sorting"
)

// wireLeaf is a scalar leaf of the wire shape: a one-element string array on
// write, a string-or-array on read.
type wireLeaf []string

func (l *wireLeaf) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = wireLeaf{s}
		return nil
	}
	return goerr.Wrap(ErrMalformedDocument, "leaf must be a string or an array of strings",
		goerr.V("raw", string(data)))
}

func (l wireLeaf) value() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

func leaf(s string) wireLeaf {
	return wireLeaf{s}
}

// wireRow mirrors one custom value entry on the wire. All five fields are
// always written, each as a one-element array.
type wireRow struct {
	Label   wireLeaf `json:"label"`
	Code    wireLeaf `json:"code"`
	Default wireLeaf `json:"default"`
	IconSet wireLeaf `json:"iconSet"`
	Icon    wireLeaf `json:"icon"`
}

// wireRows accepts both a single row object and an array of row objects
type wireRows []wireRow

func (r *wireRows) UnmarshalJSON(data []byte) error {
	var arr []wireRow
	if err := json.Unmarshal(data, &arr); err == nil {
		*r = arr
		return nil
	}
	var single wireRow
	if err := json.Unmarshal(data, &single); err == nil {
		*r = wireRows{single}
		return nil
	}
	return goerr.Wrap(ErrMalformedDocument, "customValue must be a row object or an array of row objects")
}

type wireBody struct {
	CustomValue wireRows `json:"customValue,omitempty"`
	Title       wireLeaf `json:"title,omitempty"`
	Sorting     wireLeaf `json:"sorting,omitempty"`
}

// Decode parses a wire payload into the normalized domain form. Row
// temporary identifiers are NOT assigned here; that is the editing session's
// job, so cached documents never leak identifiers between sessions.
func Decode(data []byte) (*Document, error) {
	var envelope map[string]wireBody
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, goerr.Wrap(ErrMalformedDocument, "failed to parse document JSON", goerr.V("cause", err.Error()))
	}
	if len(envelope) != 1 {
		return nil, goerr.Wrap(ErrMalformedDocument, "document must have exactly one root tag",
			goerr.V("tag_count", len(envelope)))
	}

	var root string
	var body wireBody
	for tag, b := range envelope {
		root, body = tag, b
	}

	sorting, err := types.ParseSortMode(body.Sorting.value())
	if err != nil {
		return nil, goerr.Wrap(ErrMalformedDocument, "invalid sorting mode", goerr.V("sorting", body.Sorting.value()))
	}

	doc := &Document{
		Root:    root,
		Title:   body.Title.value(),
		Sorting: sorting,
		Rows:    make([]Row, 0, len(body.CustomValue)),
	}
	for _, wr := range body.CustomValue {
		row := Row{
			Label:   wr.Label.value(),
			Code:    wr.Code.value(),
			Default: wr.Default.value(),
			IconSet: wr.IconSet.value(),
			Icon:    wr.Icon.value(),
		}
		if row.Default == "" {
			row.Default = BoolFalse
		}
		doc.Rows = append(doc.Rows, row)
	}

	return doc, nil
}

// Encode renders the document in the exact wire convention. Document-level
// fields are included only when they hold non-default values; an empty row
// collection is encoded as an absent customValue key, matching an XML
// element with no children.
func Encode(doc *Document) ([]byte, error) {
	if doc.Root == "" {
		return nil, goerr.Wrap(ErrMalformedDocument, "document root tag is required")
	}

	body := wireBody{}
	if len(doc.Rows) > 0 {
		body.CustomValue = make(wireRows, 0, len(doc.Rows))
		for _, row := range doc.Rows {
			def := row.Default
			if def == "" {
				def = BoolFalse
			}
			body.CustomValue = append(body.CustomValue, wireRow{
				Label:   leaf(row.Label),
				Code:    leaf(row.Code),
				Default: leaf(def),
				IconSet: leaf(row.IconSet),
				Icon:    leaf(row.Icon),
			})
		}
	}
	if doc.Title != "" {
		body.Title = leaf(doc.Title)
	}
	if !doc.Sorting.IsDefault() {
		body.Sorting = leaf(doc.Sorting.String())
	}

	data, err := json.Marshal(map[string]wireBody{doc.Root: body})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode metadata document", goerr.V("root", doc.Root))
	}
	return data, nil
}
