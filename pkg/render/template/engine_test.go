package template_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formstate/pkg/render/template"
)

type row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type page struct {
	Title string `json:"title"`
	Rows  []row  `json:"rows"`
}

func newEngine(t *testing.T) *template.Engine {
	t.Helper()

	files := fstest.MapFS{
		"rows.tpl":   {Data: []byte("{{ title }}:{% for r in rows %} {{ r.label }}={{ r.value|dash }}{% endfor %}")},
		"hello.tpl":  {Data: []byte("Hello {{ name }}!")},
		"broken.tpl": {Data: []byte("{% for %}")},
	}
	engine, err := template.New(files)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_ExecuteUsesJSONFieldNames(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.Execute("rows", page{
		Title: "Details",
		Rows:  []row{{Label: "First", Value: "Ada"}, {Label: "Gender", Value: " "}},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "Details: First=Ada Gender=-" {
		t.Fatalf("unexpected output %q", out)
	}

	again, err := engine.Execute("rows", page{Title: "Again"})
	if err != nil {
		t.Fatalf("execute cached: %v", err)
	}
	if again != "Again:" {
		t.Fatalf("unexpected cached output %q", again)
	}
}

func TestEngine_ExecuteMapAndNilData(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.Execute("hello", map[string]any{"name": "Ada"})
	if err != nil || out != "Hello Ada!" {
		t.Fatalf("execute map: %q, %v", out, err)
	}
	out, err = engine.Execute("hello", nil)
	if err != nil || out != "Hello !" {
		t.Fatalf("execute nil: %q, %v", out, err)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := template.New(nil); err == nil {
		t.Fatalf("expected error for nil fs")
	}

	engine := newEngine(t)
	if _, err := engine.Execute("missing", nil); err == nil || !strings.Contains(err.Error(), "missing.tpl") {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, err := engine.Execute("broken", nil); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := engine.Execute("hello", []string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}
