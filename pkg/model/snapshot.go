package model

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// DateLayout is the calendar date layout accepted for date fields.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in DateLayout.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}

// Snapshot is an immutable copy of all field values at a point in time.
// Values are one of: string, time.Time, OptionRef, []OptionRef.
type Snapshot struct {
	order   []FieldName
	values  map[FieldName]any
	options map[FieldName]bool
}

// NewSnapshot copies values into a Snapshot. order fixes the iteration order
// reported by Fields; names missing from order are not exposed.
func NewSnapshot(order []FieldName, values map[FieldName]any) Snapshot {
	snap := Snapshot{
		order:  append([]FieldName(nil), order...),
		values: make(map[FieldName]any, len(order)),
	}
	for _, name := range order {
		if value, ok := values[name]; ok {
			snap.values[name] = copyValue(value)
		}
	}
	return snap
}

// NewFormSnapshot copies values in the field order of form. Single-option
// fields are remembered so Map can report their unset sentinel as nil.
func NewFormSnapshot(form FormModel, values map[FieldName]any) Snapshot {
	snap := NewSnapshot(form.Names(), values)
	for _, field := range form.Fields {
		if !field.IsOption() {
			continue
		}
		if snap.options == nil {
			snap.options = make(map[FieldName]bool)
		}
		snap.options[field.Name] = true
	}
	return snap
}

func copyValue(value any) any {
	switch typed := value.(type) {
	case []OptionRef:
		return CloneOptions(typed)
	case *OptionRef:
		if typed == nil {
			return ""
		}
		return *typed
	default:
		return typed
	}
}

// Fields returns the field names in form order.
func (s Snapshot) Fields() []FieldName {
	return append([]FieldName(nil), s.order...)
}

// Raw returns the stored value for name. Option lists are copied.
func (s Snapshot) Raw(name FieldName) (any, bool) {
	value, ok := s.values[name]
	if !ok {
		return nil, false
	}
	return copyValue(value), true
}

// Text returns a string rendition of a text or date value; options and
// missing values yield "".
func (s Snapshot) Text(name FieldName) string {
	switch typed := s.values[name].(type) {
	case string:
		return typed
	case time.Time:
		if typed.IsZero() {
			return ""
		}
		return typed.Format(DateLayout)
	default:
		return ""
	}
}

// Option returns the selected option of a single-option field. The
// empty-string sentinel and options without a label report false.
func (s Snapshot) Option(name FieldName) (OptionRef, bool) {
	option, ok := s.values[name].(OptionRef)
	if !ok || !option.Selected() {
		return OptionRef{}, false
	}
	return option, true
}

// Options returns a copy of an option-list field.
func (s Snapshot) Options(name FieldName) []OptionRef {
	list, _ := s.values[name].([]OptionRef)
	return CloneOptions(list)
}

// Date returns a date value; strings are parsed with DateLayout.
func (s Snapshot) Date(name FieldName) (time.Time, bool) {
	switch typed := s.values[name].(type) {
	case time.Time:
		return typed, !typed.IsZero()
	case string:
		if strings.TrimSpace(typed) == "" {
			return time.Time{}, false
		}
		parsed, err := ParseDate(typed)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// Map returns a copy of the values keyed by field name. Dates are formatted
// with DateLayout. An unset option (the zero OptionRef, or the "" sentinel
// of a single-option field) becomes nil.
func (s Snapshot) Map() map[string]any {
	out := make(map[string]any, len(s.order))
	for _, name := range s.order {
		value, ok := s.values[name]
		if !ok {
			continue
		}
		switch typed := value.(type) {
		case time.Time:
			out[string(name)] = s.Text(name)
		case OptionRef:
			if typed.IsZero() {
				out[string(name)] = nil
			} else {
				out[string(name)] = typed
			}
		case []OptionRef:
			out[string(name)] = CloneOptions(typed)
		case string:
			if typed == "" && s.options[name] {
				out[string(name)] = nil
			} else {
				out[string(name)] = typed
			}
		default:
			out[string(name)] = typed
		}
	}
	return out
}

// MarshalJSON encodes the snapshot as a JSON object keyed by field name.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}
