package template

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"
)

// Extension is appended to template names passed to Execute.
const Extension = ".tpl"

var registerFilters sync.Once

// Engine executes pongo2 templates read from an fs.FS. Parsed templates are
// cached by name.
type Engine struct {
	set *pongo2.TemplateSet

	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

// New builds an Engine over files.
func New(files fs.FS) (*Engine, error) {
	if files == nil {
		return nil, errors.New("template: fs.FS is required")
	}
	registerFilters.Do(func() {
		if !pongo2.FilterExists("dash") {
			_ = pongo2.RegisterFilter("dash", filterDash)
		}
	})
	return &Engine{
		set:   pongo2.NewSet("formstate", pongo2.NewFSLoader(files)),
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// Execute renders the template name (without extension). data is exposed to
// the template through its JSON field names.
func (e *Engine) Execute(name string, data any) (string, error) {
	tmpl, err := e.lookup(name + Extension)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("template: %s: %w", name, err)
	}
	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("template: execute %s: %w", name, err)
	}
	return out, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: load %s: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var ctx pongo2.Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("data of type %T is not an object", data)
	}
	return ctx, nil
}

// filterDash renders blank values as "-".
func filterDash(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if strings.TrimSpace(in.String()) == "" {
		return pongo2.AsValue("-"), nil
	}
	return in, nil
}
