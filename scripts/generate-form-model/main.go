package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	formstate "github.com/goliatone/go-formstate"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

func main() {
	var (
		schemaPath = flag.String("source", "pkg/testsupport/testdata/profile.openapi.yaml", "OpenAPI document path")
		schemaName = flag.String("schema", "UserProfile", "component schema or operationId to snapshot")
		outputPath = flag.String("output", "pkg/testsupport/testdata/profile_form_model.json", "output path for the serialized form model")
	)
	flag.Parse()

	ctx := context.Background()

	form, err := formstate.LoadFormModel(ctx, formstate.FormModelRequest{
		Source:        pkgopenapi.SourceFromFile(*schemaPath),
		Schema:        *schemaName,
		ParserOptions: []pkgopenapi.ParserOption{pkgopenapi.WithDocumentValidation(true)},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build form model: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode form model: %v\n", err)
		os.Exit(1)
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("Form model written to %s\n", *outputPath)
}
