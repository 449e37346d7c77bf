package formstate

import (
	"context"
	"fmt"
	"log/slog"

	internalLoader "github.com/goliatone/go-formstate/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formstate/internal/openapi/parser"
	pkgmodel "github.com/goliatone/go-formstate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// FormModelRequest describes where to find the schema a form is built from.
type FormModelRequest struct {
	Source pkgopenapi.Source
	// Schema names a component schema or an operationId whose request body
	// holds the form schema.
	Schema        string
	LoaderOptions []pkgopenapi.LoaderOption
	ParserOptions []pkgopenapi.ParserOption
	Builder       pkgmodel.Builder
	// Logger receives a debug summary of the resolved schema. Optional.
	Logger *slog.Logger
}

// LoadFormModel loads an OpenAPI document, extracts the requested schema and
// builds a form model from it.
func LoadFormModel(ctx context.Context, req FormModelRequest) (pkgmodel.FormModel, error) {
	doc, err := NewLoader(req.LoaderOptions...).Load(ctx, req.Source)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("formstate: load: %w", err)
	}
	schema, err := NewParser(req.ParserOptions...).Schema(ctx, doc, req.Schema)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("formstate: parse: %w", err)
	}
	if req.Logger != nil {
		req.Logger.Debug("form.schema",
			slog.String("name", req.Schema),
			slog.String("schema", schema.DebugString()),
		)
	}
	builder := req.Builder
	if builder == nil {
		builder = pkgmodel.NewBuilder()
	}
	form, err := builder.Build(req.Schema, schema)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("formstate: build: %w", err)
	}
	return form, nil
}
