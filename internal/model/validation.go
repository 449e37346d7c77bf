package model

import (
	"errors"
	"fmt"
	"strings"

	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

var (
	errFormIDMissing     = errors.New("model builder: form id is required")
	errPropertiesMissing = errors.New("model builder: object schema has no properties")
)

func validateSchema(id string, schema pkgopenapi.Schema) error {
	if strings.TrimSpace(id) == "" {
		return errFormIDMissing
	}
	if schema.Type != "" && schema.Type != "object" {
		return fmt.Errorf("model builder: expected object schema, got %q", schema.Type)
	}
	if len(schema.Properties) == 0 {
		return errPropertiesMissing
	}
	return nil
}
