// Package model defines the declarative form model (FormModel, Field,
// ValidationRule) together with the value types the form engine works with:
// OptionRef records for single and multi-option fields and the immutable
// Snapshot captured from the form state. Builders reside in internal/model
// but return the types defined here.
//
// Validation rules use canonical identifiers (minLength, maxLength, pattern)
// with string parameters; Params["message"] carries the user-facing message.
// Required and format messages live in Field.Metadata under the
// "message.required" and "message.format" keys.
package model
