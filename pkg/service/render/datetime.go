package render

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/vellum-crm/vellum/pkg/domain/model"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

const dateOnlyLayout = "2006-01-02"

// Layouts that parse but carry no offset. Matching one of these is the
// ambiguous-local-time case, rejected rather than guessed.
var offsetlessLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Layouts with an explicit numeric offset, beyond what RFC 3339 covers
var numericOffsetLayouts = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05-07",
}

var timeOfDayLayouts = []string{
	"15:04:05",
	"15:04",
}

// DateTime renders date, time and datetime fields. The canonical value is a
// timezone-aware instant; date-only strings mean midnight UTC of that date.
type DateTime struct {
	kind types.FieldKind
	desc *model.FieldDescriptor
	loc  *time.Location
}

// DateTimeOption is a functional option for DateTime configuration
type DateTimeOption func(*DateTime)

// WithLocation sets the display timezone for datetime values. Date-only
// values are calendar dates and always display in UTC regardless.
func WithLocation(loc *time.Location) DateTimeOption {
	return func(r *DateTime) {
		r.loc = loc
	}
}

// NewDateTime creates a renderer for one of the temporal field kinds
func NewDateTime(kind types.FieldKind, desc *model.FieldDescriptor, opts ...DateTimeOption) *DateTime {
	r := &DateTime{
		kind: kind,
		desc: desc,
		loc:  time.UTC,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Parse normalizes a stored string into its canonical instant. Accepted
// inputs are a bare YYYY-MM-DD date (midnight UTC), a timestamp with an
// explicit Z or numeric offset, or (for the time kind) a bare time of day.
// Offsetless timestamps return ErrAmbiguousTime.
func (r *DateTime) Parse(stored string) (time.Time, error) {
	if stored == "" {
		return time.Time{}, nil
	}

	if r.kind == types.FieldKindTime {
		for _, layout := range timeOfDayLayouts {
			if t, err := time.ParseInLocation(layout, stored, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, goerr.Wrap(ErrMalformedValue, "invalid time of day", goerr.V("stored", stored))
	}

	if t, err := time.ParseInLocation(dateOnlyLayout, stored, time.UTC); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, stored); err == nil {
		return t, nil
	}
	for _, layout := range numericOffsetLayouts {
		if t, err := time.Parse(layout, stored); err == nil {
			return t, nil
		}
	}

	for _, layout := range offsetlessLayouts {
		if _, err := time.Parse(layout, stored); err == nil {
			return time.Time{}, goerr.Wrap(ErrAmbiguousTime, "refusing to guess a timezone", goerr.V("stored", stored))
		}
	}

	return time.Time{}, goerr.Wrap(ErrMalformedValue, "invalid timestamp", goerr.V("stored", stored))
}

// Commit emits the canonical stored string for an instant: YYYY-MM-DD for
// dates, HH:MM for times, RFC 3339 UTC for datetimes.
func (r *DateTime) Commit(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	switch r.kind {
	case types.FieldKindDate:
		return t.UTC().Format(dateOnlyLayout)
	case types.FieldKindTime:
		return t.Format("15:04")
	default:
		return t.UTC().Format(time.RFC3339)
	}
}

// EditValue returns the canonical string for the edit control. Malformed or
// ambiguous stored values return the error for inline display, scoped to
// this one field.
func (r *DateTime) EditValue(stored string) (string, error) {
	t, err := r.Parse(stored)
	if err != nil {
		return "", err
	}
	return r.Commit(t), nil
}

// Display formats the stored value for view or table mode. Empty stays
// empty; anything unparseable renders the invalid-date placeholder.
func (r *DateTime) Display(ctx context.Context, mode types.RenderMode, stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	t, err := r.Parse(stored)
	if err != nil {
		return InvalidDatePlaceholder, nil
	}

	if format := r.desc.Format; format != "" {
		return r.display(t).Format(format), nil
	}

	switch r.kind {
	case types.FieldKindDate:
		if mode == types.RenderModeTable {
			return t.UTC().Format(dateOnlyLayout), nil
		}
		return t.UTC().Format("Jan 2, 2006"), nil

	case types.FieldKindTime:
		return t.Format("15:04"), nil

	default:
		if mode == types.RenderModeTable {
			return r.display(t).Format("2006-01-02 15:04"), nil
		}
		return r.display(t).Format("Jan 2, 2006 15:04"), nil
	}
}

// display moves an instant into the display timezone. Calendar dates stay
// in UTC so the shown date never shifts.
func (r *DateTime) display(t time.Time) time.Time {
	if r.kind == types.FieldKindDate {
		return t.UTC()
	}
	return t.In(r.loc)
}
