package model

import (
	"fmt"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

const extensionNamespace = "x-formgen"

// Builder converts OpenAPI object schemas into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an object schema into a FormModel. Each top-level property
// becomes a field; object properties become single-option fields and arrays
// become option-list fields.
func (b *Builder) Build(id string, schema pkgopenapi.Schema) (FormModel, error) {
	if err := validateSchema(id, schema); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		ID:          id,
		Title:       schema.Title,
		Description: schema.Description,
	}

	for _, name := range schema.PropertyOrder {
		property := schema.Properties[name]
		field, err := b.fieldFromSchema(name, property, schema.IsRequired(name))
		if err != nil {
			return FormModel{}, fmt.Errorf("model builder: field %q: %w", name, err)
		}
		form.Fields = append(form.Fields, field)
	}

	return form, nil
}

func (b *Builder) fieldFromSchema(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	if err := schema.Validate(); err != nil {
		return Field{}, err
	}
	ext := formgenExtension(schema.Extensions)

	field := Field{
		Name:        FieldName(name),
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Required:    required,
		Label:       b.label(name, schema, ext),
		Placeholder: stringValue(ext["placeholder"]),
		Description: schema.Description,
		Default:     schema.Default,
		Metadata:    metadataFromExtension(ext),
	}

	switch field.Type {
	case FieldTypeObject:
		for _, child := range schema.PropertyOrder {
			nested, err := b.fieldFromSchema(child, schema.Properties[child], schema.IsRequired(child))
			if err != nil {
				return Field{}, err
			}
			field.Nested = append(field.Nested, nested)
		}
	case FieldTypeArray:
		items, err := b.fieldFromSchema("items", *schema.Items, false)
		if err != nil {
			return Field{}, err
		}
		field.Items = &items
	}

	applyValidations(&field, schema, ext)
	return field, nil
}

func (b *Builder) label(name string, schema pkgopenapi.Schema, ext map[string]any) string {
	if label := stringValue(ext["label"]); label != "" {
		return label
	}
	if schema.Title != "" {
		return schema.Title
	}
	return b.opts.Labeler(name)
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

// applyValidations maps schema constraints onto rules: x-formgen digits, then
// pattern, minLength and maxLength.
func applyValidations(field *Field, schema pkgopenapi.Schema, ext map[string]any) {
	if field == nil {
		return
	}
	messages := messagesFromExtension(ext)

	if digits, _ := ext["digits"].(bool); digits {
		params := withMessage(map[string]string{}, messages[ValidationRuleDigits])
		if len(params) == 0 {
			params = nil
		}
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleDigits,
			Params: params,
		})
	}

	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRulePattern,
			Params: withMessage(map[string]string{
				"pattern": schema.Pattern,
			}, messages[ValidationRulePattern]),
		})
	}

	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleMinLength,
			Params: withMessage(map[string]string{
				"value": strconv.Itoa(*schema.MinLength),
			}, messages[ValidationRuleMinLength]),
		})
	}

	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleMaxLength,
			Params: withMessage(map[string]string{
				"value": strconv.Itoa(*schema.MaxLength),
			}, messages[ValidationRuleMaxLength]),
		})
	}

	if len(field.Validations) == 0 {
		field.Validations = nil
	}
}

func withMessage(params map[string]string, message string) map[string]string {
	if message = strings.TrimSpace(message); message != "" {
		params["message"] = message
	}
	return params
}

func formgenExtension(ext map[string]any) map[string]any {
	if len(ext) == 0 {
		return nil
	}
	mapped, _ := ext[extensionNamespace].(map[string]any)
	return mapped
}

func messagesFromExtension(ext map[string]any) map[string]string {
	raw, ok := ext["messages"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if msg := stringValue(value); msg != "" {
			out[key] = msg
		}
	}
	return out
}

// metadataFromExtension lifts required/format messages and the display
// prefix into field metadata.
func metadataFromExtension(ext map[string]any) map[string]string {
	messages := messagesFromExtension(ext)
	metadata := make(map[string]string)
	if msg := messages["required"]; msg != "" {
		metadata[MetadataRequiredMessage] = msg
	}
	if msg := messages["format"]; msg != "" {
		metadata[MetadataFormatMessage] = msg
	}
	if prefix := stringValue(ext["prefix"]); prefix != "" {
		metadata[MetadataDisplayPrefix] = prefix
	}
	if len(metadata) == 0 {
		return nil
	}
	return metadata
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}
