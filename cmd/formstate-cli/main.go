package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	formstate "github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/config"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (JSON or YAML)")
	format := flag.String("format", "", "output format: text, html or json (overrides config)")
	schemaSource := flag.String("source", "", "OpenAPI document path (overrides config)")
	schemaName := flag.String("schema", "", "component schema or operationId (overrides config)")
	printSchema := flag.Bool("print-schema", false, "print the profile JSON schema and exit")
	flag.Parse()

	if *printSchema {
		payload, err := model.ProfileJSONSchema()
		if err != nil {
			log.Fatalf("Failed to build schema: %v", err)
		}
		fmt.Println(string(payload))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *format != "" {
		cfg.OutputFormat = strings.TrimSpace(*format)
	}
	if *schemaSource != "" {
		cfg.SchemaSource = *schemaSource
	}
	if *schemaName != "" {
		cfg.SchemaName = *schemaName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := run(ctx, cfg, logger)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Cancelled")
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("Form session failed: %v", err)
	}
	fmt.Print(string(out))
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) ([]byte, error) {
	opts := []form.Option{
		form.WithAcceptor(form.LogAcceptor(logger)),
		form.WithLogger(logger),
		form.WithMandatoryOption(cfg.MandatoryTech),
		form.WithRejectDuplicateTags(cfg.RejectDuplicateTags),
		form.WithSubmitTimeout(cfg.Timeout()),
	}

	if source := strings.TrimSpace(cfg.SchemaSource); source != "" {
		formModel, err := formstate.LoadFormModel(ctx, formstate.FormModelRequest{
			Source:        pkgopenapi.SourceFromFile(source),
			Schema:        cfg.SchemaName,
			ParserOptions: []pkgopenapi.ParserOption{pkgopenapi.WithDocumentValidation(true)},
			Logger:        logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("form.model",
			slog.String("source", source),
			slog.String("schema", cfg.SchemaName),
			slog.Int("fields", len(formModel.Fields)),
		)
		opts = append(opts, form.WithFormModel(formModel))
	}

	f, err := form.New(opts...)
	if err != nil {
		return nil, err
	}

	registry, err := render.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	session, err := tui.NewSession(f,
		tui.WithPromptDriver(tui.NewSurveyDriver(os.Stderr)),
		tui.WithGenderOptions(cfg.GenderOptions),
		tui.WithTechOptions(cfg.TechOptions),
		tui.WithRenderer(renderer),
		tui.WithDetailsOptions(render.DetailsOptions{
			ISDPrefix:  cfg.ISDPrefix,
			DateLayout: cfg.DateLayout,
		}),
		tui.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return session.Run(ctx)
}
