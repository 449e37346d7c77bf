package model

// FieldName identifies a top-level form field.
type FieldName string

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	FormatEmail = "email"
	FormatDate  = "date"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleDigits    = "digits"
)

const (
	// MetadataRequiredMessage overrides the message reported when a required
	// field is missing.
	MetadataRequiredMessage = "message.required"
	// MetadataFormatMessage overrides the message reported when a value does
	// not match the field format (email, date).
	MetadataFormatMessage = "message.format"
	// MetadataDisplayPrefix carries a prefix presentation layers put in front
	// of the value (for example an ISD code before a phone number).
	MetadataDisplayPrefix = "display.prefix"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"],
// pattern rules keep the expression in Params["pattern"]. Params["message"]
// optionally carries the user-facing message reported when the rule fails.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Message returns the configured user-facing message, if any.
func (r ValidationRule) Message() string {
	if len(r.Params) == 0 {
		return ""
	}
	return r.Params["message"]
}

// Field models an individual input inside a form.
type Field struct {
	Name        FieldName         `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IsOption reports whether the field holds a single {label, value} option.
func (f Field) IsOption() bool {
	return f.Type == FieldTypeObject
}

// IsOptionList reports whether the field holds a list of {label, value}
// options.
func (f Field) IsOptionList() bool {
	return f.Type == FieldTypeArray
}

// IsDate reports whether the field holds a calendar date.
func (f Field) IsDate() bool {
	return f.Type == FieldTypeString && f.Format == FormatDate
}

// FormModel is the declarative definition of a form: its ordered fields and
// their constraints.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field definition registered under name.
func (m FormModel) Field(name FieldName) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (m FormModel) Names() []FieldName {
	out := make([]FieldName, 0, len(m.Fields))
	for _, field := range m.Fields {
		out = append(out, field.Name)
	}
	return out
}
