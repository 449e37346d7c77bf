package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

const extensionNamespace = "x-formgen"

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Schema resolves name against components.schemas first and falls back to
// the JSON request body of the operation carrying that operationId.
func (p *Parser) Schema(ctx context.Context, doc pkgopenapi.Document, name string) (pkgopenapi.Schema, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Schema{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgopenapi.Schema{}, errors.New("openapi parser: schema name is required")
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Schema{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.Schema{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgopenapi.Schema{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Components != nil {
		if ref, ok := spec.Components.Schemas[name]; ok && ref != nil {
			return convertSchema(ref), nil
		}
	}

	if ref := requestBodySchema(spec, name); ref != nil {
		return convertSchema(ref), nil
	}

	return pkgopenapi.Schema{}, fmt.Errorf("openapi parser: schema %q not found in %s", name, doc.Location())
}

func requestBodySchema(spec *openapi3.T, operationID string) *openapi3.SchemaRef {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			if op.RequestBody == nil || op.RequestBody.Value == nil {
				return nil
			}
			content := op.RequestBody.Value.Content
			for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
				if mt, ok := content[mediaType]; ok && mt != nil {
					return mt.Schema
				}
			}
			return nil
		}
	}
	return nil
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return convertSchemaRef(ref, make(map[*openapi3.Schema]struct{}))
}

func convertSchemaRef(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]struct{}) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	if _, cycle := visiting[src]; cycle {
		return pkgopenapi.Schema{Ref: ref.Ref, Type: firstSchemaType(src.Type)}
	}
	visiting[src] = struct{}{}
	defer delete(visiting, src)

	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Title:       src.Title,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		Default:     src.Default,
		Pattern:     src.Pattern,
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchemaRef(property, visiting)
		}
	}
	if src.Items != nil {
		items := convertSchemaRef(src.Items, visiting)
		schema.Items = &items
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	schema.Extensions = extractExtensions(src.Extensions)
	schema.PropertyOrder = propertyOrder(schema)
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

// propertyOrder honours x-formgen.order, then the required list, then
// alphabetical order for the remaining properties.
func propertyOrder(schema pkgopenapi.Schema) []string {
	if len(schema.Properties) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(schema.Properties))
	out := make([]string, 0, len(schema.Properties))
	add := func(name string) {
		if _, ok := schema.Properties[name]; !ok {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	if ns, ok := schema.Extensions[extensionNamespace].(map[string]any); ok {
		if order, ok := ns["order"].([]any); ok {
			for _, entry := range order {
				if name, ok := entry.(string); ok {
					add(strings.TrimSpace(name))
				}
			}
		}
	}
	for _, name := range schema.Required {
		add(name)
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		add(name)
	}
	return out
}

func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	result := make(map[string]any)
	for key, value := range raw {
		switch {
		case key == extensionNamespace:
			if mapped, ok := cloneMap(value); ok && len(mapped) > 0 {
				result[key] = mapped
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func cloneMap(value any) (map[string]any, bool) {
	mapped, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	cloned := make(map[string]any, len(mapped))
	for k, v := range mapped {
		cloned[k] = v
	}
	return cloned, true
}
