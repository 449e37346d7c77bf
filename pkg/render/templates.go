package render

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	tpl "github.com/goliatone/go-formstate/pkg/render/template"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	textTemplate = "details_text"
	htmlTemplate = "details_html"
)

// Option configures the template-backed renderers.
type Option func(*templateConfig)

type templateConfig struct {
	files fs.FS
}

// WithTemplateFS replaces the embedded templates. The FS must provide
// details_text.tpl and/or details_html.tpl.
func WithTemplateFS(files fs.FS) Option {
	return func(cfg *templateConfig) {
		if files != nil {
			cfg.files = files
		}
	}
}

// DefaultTemplates returns the embedded details templates.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("render: embedded templates: %v", err))
	}
	return sub
}

type templateRenderer struct {
	name        string
	contentType string
	template    string
	sanitize    bool
	engine      *tpl.Engine
}

func newTemplateRenderer(name, contentType, template string, sanitize bool, opts []Option) (*templateRenderer, error) {
	cfg := templateConfig{files: DefaultTemplates()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	engine, err := tpl.New(cfg.files)
	if err != nil {
		return nil, fmt.Errorf("render: %s engine: %w", name, err)
	}
	return &templateRenderer{
		name:        name,
		contentType: contentType,
		template:    template,
		sanitize:    sanitize,
		engine:      engine,
	}, nil
}

// NewTextRenderer renders details as plain "Label: value" lines.
func NewTextRenderer(opts ...Option) (Renderer, error) {
	return newTemplateRenderer("text", "text/plain; charset=utf-8", textTemplate, false, opts)
}

// NewHTMLRenderer renders details as an HTML fragment. Values are stripped of
// markup before rendering.
func NewHTMLRenderer(opts ...Option) (Renderer, error) {
	return newTemplateRenderer("html", "text/html; charset=utf-8", htmlTemplate, true, opts)
}

func (r *templateRenderer) Name() string        { return r.name }
func (r *templateRenderer) ContentType() string { return r.contentType }

func (r *templateRenderer) Render(ctx context.Context, details Details) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.sanitize {
		details = details.Sanitized()
	}
	out, err := r.engine.Execute(r.template, details)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
