package render

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// Number renders numeric fields
type Number struct {
	desc *model.FieldDescriptor
}

func NewNumber(desc *model.FieldDescriptor) *Number {
	return &Number{desc: desc}
}

// Display formats the stored value, fixing the fraction width when the
// descriptor sets DecimalPlaces. Empty stays empty; anything unparseable
// renders the invalid-number placeholder.
func (r *Number) Display(ctx context.Context, mode types.RenderMode, stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	v, err := strconv.ParseFloat(stored, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return InvalidNumberPlaceholder, nil
	}

	if places := r.desc.DecimalPlaces; places >= 0 {
		return strconv.FormatFloat(v, 'f', places, 64), nil
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// Input is the edit-mode state machine for numeric fields. The visible
// text is always exactly what was typed. The commit callback fires with nil
// when the text becomes empty and with the parsed value when it parses to a
// finite number; in-progress states like "-", "1." or "2e" keep the text
// without committing anything.
type Input struct {
	text     string
	onCommit func(*float64)
}

// NewInput creates an input seeded with the stored value. Seeding does not
// fire the callback; nothing has been typed yet.
func NewInput(initial string, onCommit func(*float64)) *Input {
	return &Input{
		text:     initial,
		onCommit: onCommit,
	}
}

// Text returns the exact visible input text
func (x *Input) Text() string {
	return x.text
}

// Type replaces the visible text with what the user typed and applies the
// commit rules.
func (x *Input) Type(text string) {
	x.text = text

	if x.onCommit == nil {
		return
	}

	if text == "" {
		x.onCommit(nil)
		return
	}
	if partialNumber(text) {
		return
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return
	}
	x.onCommit(&v)
}

// partialNumber reports in-progress numeric input that must not commit yet,
// even where ParseFloat would accept it (a trailing decimal point parses,
// but committing would rewrite the text mid-keystroke).
func partialNumber(text string) bool {
	switch {
	case text == "-" || text == "+":
		return true
	case strings.HasSuffix(text, "."):
		return true
	case strings.HasSuffix(text, "e") || strings.HasSuffix(text, "E"):
		return true
	case strings.HasSuffix(text, "e-") || strings.HasSuffix(text, "e+"),
		strings.HasSuffix(text, "E-") || strings.HasSuffix(text, "E+"):
		return true
	}
	return false
}
