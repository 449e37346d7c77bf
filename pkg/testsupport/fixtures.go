package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-formstate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadFormModel loads a JSON golden file into a FormModel structure.
func MustLoadFormModel(t *testing.T, path string) pkgmodel.FormModel {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read form model: %v", err)
	}
	var out pkgmodel.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal form model: %v", err)
	}
	return out
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a context cancelled when the test ends.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// AdaLovelace returns a complete, valid set of profile values.
func AdaLovelace() map[pkgmodel.FieldName]any {
	return map[pkgmodel.FieldName]any{
		pkgmodel.FieldFirstName:   "Ada",
		pkgmodel.FieldLastName:    "Lovelace",
		pkgmodel.FieldEmail:       "ada@example.com",
		pkgmodel.FieldPhone:       "9876543210",
		pkgmodel.FieldGender:      pkgmodel.Option("female", "Female"),
		pkgmodel.FieldDateOfBirth: time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
		pkgmodel.FieldTechStack: []pkgmodel.OptionRef{
			pkgmodel.Option("go", "Go"),
			pkgmodel.Option("javascript", "JavaScript"),
		},
	}
}

// AdaSnapshot returns AdaLovelace as a snapshot in profile order.
func AdaSnapshot() pkgmodel.Snapshot {
	return pkgmodel.NewFormSnapshot(pkgmodel.UserProfileForm(), AdaLovelace())
}

// FieldSetter is satisfied by form.Form.
type FieldSetter interface {
	SetField(name pkgmodel.FieldName, value any) error
}

// Fill writes values in profile order, failing the test on error.
func Fill(t *testing.T, form FieldSetter, values map[pkgmodel.FieldName]any) {
	t.Helper()
	for _, name := range pkgmodel.ProfileFields {
		value, ok := values[name]
		if !ok {
			continue
		}
		if err := form.SetField(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}
