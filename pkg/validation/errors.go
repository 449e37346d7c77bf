package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Kind classifies a field error.
type Kind string

const (
	// KindRequired reports a missing or empty value.
	KindRequired Kind = "required"
	// KindFormat reports a value that is present but malformed.
	KindFormat Kind = "format"
	// KindLength reports a value that is too short or too long.
	KindLength Kind = "length"
)

// FieldError is a user-facing, recoverable error attached to one field.
type FieldError struct {
	Field   model.FieldName `json:"field"`
	Kind    Kind            `json:"kind"`
	Message string          `json:"message"`
}

// Error implements error.
func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors maps field names to their current error. A field without an entry
// is valid.
type Errors map[model.FieldName]FieldError

// Error summarises the first few errors in field order.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	const maxShown = 3
	fields := e.Fields()
	var b strings.Builder
	for i, name := range fields {
		if i == maxShown {
			fmt.Fprintf(&b, "; ... (total %d)", len(fields))
			break
		}
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s at %s", e[name].Kind, name)
	}
	return b.String()
}

// Get returns the error recorded for name.
func (e Errors) Get(name model.FieldName) (FieldError, bool) {
	fe, ok := e[name]
	return fe, ok
}

// Fields returns the failing field names sorted alphabetically.
func (e Errors) Fields() []model.FieldName {
	out := make([]model.FieldName, 0, len(e))
	for name := range e {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Messages flattens the errors into field -> message.
func (e Errors) Messages() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for name, fe := range e {
		out[string(name)] = fe.Message
	}
	return out
}

// Clone returns a copy; nil stays nil.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
