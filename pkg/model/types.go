package model

import internalmodel "github.com/goliatone/go-formstate/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
	FieldTypeObject  = internalmodel.FieldTypeObject
)

const (
	FormatEmail = internalmodel.FormatEmail
	FormatDate  = internalmodel.FormatDate

	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
	ValidationRuleDigits    = internalmodel.ValidationRuleDigits

	MetadataRequiredMessage = internalmodel.MetadataRequiredMessage
	MetadataFormatMessage   = internalmodel.MetadataFormatMessage
	MetadataDisplayPrefix   = internalmodel.MetadataDisplayPrefix
)

type FieldName = internalmodel.FieldName
type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// Profile field names.
const (
	FieldFirstName   FieldName = "firstName"
	FieldLastName    FieldName = "lastName"
	FieldEmail       FieldName = "email"
	FieldPhone       FieldName = "phone"
	FieldGender      FieldName = "gender"
	FieldDateOfBirth FieldName = "dateOfBirth"
	FieldTechStack   FieldName = "techStack"
)

// DefaultLabeler turns a field name into a title-cased label.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// SentenceLabeler turns a field name into a sentence-cased label.
func SentenceLabeler(name string) string {
	return internalmodel.SentenceLabeler(name)
}
