package form

import (
	"cafein/model"
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown cafe field")

// FieldUpdate is one edit to a text field of the draft. The set of
// variants is closed; see the Set* types below.
type FieldUpdate interface {
	Field() string
	apply(*model.CafeRecord)
}

type (
	SetName      string
	SetAddress   string
	SetContact   string
	SetNotice    string
	SetOpenTime  string
	SetCloseTime string
)

func (v SetName) Field() string      { return "name" }
func (v SetAddress) Field() string   { return "address" }
func (v SetContact) Field() string   { return "contact" }
func (v SetNotice) Field() string    { return "notice" }
func (v SetOpenTime) Field() string  { return "openTime" }
func (v SetCloseTime) Field() string { return "closeTime" }

func (v SetName) apply(r *model.CafeRecord)      { r.Name = string(v) }
func (v SetAddress) apply(r *model.CafeRecord)   { r.Address = string(v) }
func (v SetContact) apply(r *model.CafeRecord)   { r.Contact = string(v) }
func (v SetNotice) apply(r *model.CafeRecord)    { r.Notice = string(v) }
func (v SetOpenTime) apply(r *model.CafeRecord)  { r.OpenTime = string(v) }
func (v SetCloseTime) apply(r *model.CafeRecord) { r.CloseTime = string(v) }

// TextFields are the input names the form page renders, in page order.
var TextFields = []string{"name", "openTime", "closeTime", "address", "contact", "notice"}

// ParseFieldUpdate maps an input name from the page to its update.
func ParseFieldUpdate(field, value string) (FieldUpdate, error) {
	switch field {
	case "name":
		return SetName(value), nil
	case "address":
		return SetAddress(value), nil
	case "contact":
		return SetContact(value), nil
	case "notice":
		return SetNotice(value), nil
	case "openTime":
		return SetOpenTime(value), nil
	case "closeTime":
		return SetCloseTime(value), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Apply returns r with the single field named by u replaced. Values are
// taken as typed; "9:00" and "abc" are both accepted as open times.
func Apply(r model.CafeRecord, u FieldUpdate) model.CafeRecord {
	u.apply(&r)
	return r
}
