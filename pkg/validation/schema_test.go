package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func validValues() map[model.FieldName]any {
	return map[model.FieldName]any{
		model.FieldFirstName:   "Ada",
		model.FieldLastName:    "Lovelace",
		model.FieldEmail:       "ada@example.com",
		model.FieldPhone:       "9876543210",
		model.FieldGender:      model.Option("female", "Female"),
		model.FieldDateOfBirth: time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
		model.FieldTechStack:   []model.OptionRef{model.Option("javascript", "JavaScript")},
	}
}

func snapshotWith(overrides map[model.FieldName]any) model.Snapshot {
	values := validValues()
	for k, v := range overrides {
		values[k] = v
	}
	return model.NewSnapshot(model.ProfileFields, values)
}

func TestDefaultSchema_ValidSnapshot(t *testing.T) {
	errs := validation.DefaultSchema().Validate(snapshotWith(nil))
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestDefaultSchema_EmptySnapshotReportsEveryField(t *testing.T) {
	empty := model.NewSnapshot(model.ProfileFields, map[model.FieldName]any{
		model.FieldFirstName:   "",
		model.FieldLastName:    "",
		model.FieldEmail:       "",
		model.FieldPhone:       "",
		model.FieldGender:      "",
		model.FieldDateOfBirth: "",
		model.FieldTechStack:   []model.OptionRef{},
	})

	got := validation.DefaultSchema().Validate(empty).Messages()
	want := map[string]string{
		"firstName":   "First name is required",
		"lastName":    "Last name is required",
		"email":       "Email is required",
		"phone":       "Phone number is required",
		"gender":      "Gender is required",
		"dateOfBirth": "Date of birth is required",
		"techStack":   "Tech stack is required",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultSchema_FieldRules(t *testing.T) {
	schema := validation.DefaultSchema()
	cases := []struct {
		name    string
		field   model.FieldName
		value   any
		kind    validation.Kind
		message string
	}{
		{"whitespace first name", model.FieldFirstName, "   ", validation.KindRequired, "First name is required"},
		{"malformed email", model.FieldEmail, "ada@", validation.KindFormat, "Must be a valid email"},
		{"non digit phone", model.FieldPhone, "12a", validation.KindFormat, "Phone number must be only digits"},
		{"short phone", model.FieldPhone, "12345", validation.KindLength, "Phone number must be at least 10 digits"},
		{"gender sentinel", model.FieldGender, "", validation.KindRequired, "Gender is required"},
		{"gender blank label", model.FieldGender, model.Option("x", " "), validation.KindRequired, "Gender is required"},
		{"unparseable date", model.FieldDateOfBirth, "10/12/1815", validation.KindRequired, "Date of birth is required"},
		{"nil tech stack", model.FieldTechStack, nil, validation.KindRequired, "Tech stack is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fe, err := schema.ValidateField(tc.field, snapshotWith(map[model.FieldName]any{tc.field: tc.value}))
			if err != nil {
				t.Fatalf("validate field: %v", err)
			}
			if fe == nil {
				t.Fatalf("expected error for %s", tc.field)
			}
			want := validation.FieldError{Field: tc.field, Kind: tc.kind, Message: tc.message}
			if diff := cmp.Diff(want, *fe); diff != "" {
				t.Fatalf("field error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultSchema_DateStringAccepted(t *testing.T) {
	fe, err := validation.DefaultSchema().ValidateField(model.FieldDateOfBirth, snapshotWith(map[model.FieldName]any{
		model.FieldDateOfBirth: "1815-12-10",
	}))
	if err != nil {
		t.Fatalf("validate field: %v", err)
	}
	if fe != nil {
		t.Fatalf("expected valid date, got %v", fe)
	}
}

func TestSchema_ValidateIsIdempotent(t *testing.T) {
	schema := validation.DefaultSchema()
	snap := snapshotWith(map[model.FieldName]any{model.FieldPhone: "12a", model.FieldEmail: "nope"})

	first := schema.Validate(snap)
	second := schema.Validate(snap)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validate not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]model.FieldName{model.FieldEmail, model.FieldPhone}, first.Fields()); diff != "" {
		t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_ValidateFieldUnknown(t *testing.T) {
	_, err := validation.DefaultSchema().ValidateField("nickname", snapshotWith(nil))
	if !errors.Is(err, validation.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCompile_GeneratedMessages(t *testing.T) {
	form := model.FormModel{
		ID: "signup",
		Fields: []model.Field{
			{Name: "userName", Type: model.FieldTypeString, Required: true, Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "4"}},
			}},
		},
	}
	schema, err := validation.Compile(form)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	order := []model.FieldName{"userName"}
	missing := schema.Validate(model.NewSnapshot(order, map[model.FieldName]any{"userName": ""}))
	if got := missing["userName"].Message; got != "User name is required" {
		t.Fatalf("unexpected required message %q", got)
	}
	long := schema.Validate(model.NewSnapshot(order, map[model.FieldName]any{"userName": "abcdef"}))
	if got := long["userName"]; got.Kind != validation.KindLength || got.Message != "User name must be at most 4 characters" {
		t.Fatalf("unexpected length error %+v", got)
	}
}

func TestCompile_Errors(t *testing.T) {
	badPattern := model.FormModel{ID: "x", Fields: []model.Field{{
		Name: "code", Type: model.FieldTypeString,
		Validations: []model.ValidationRule{{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "("}}},
	}}}
	if _, err := validation.Compile(badPattern); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}

	unsupported := model.FormModel{ID: "x", Fields: []model.Field{{
		Name: "code", Type: model.FieldTypeString,
		Validations: []model.ValidationRule{{Kind: "uniqueItems"}},
	}}}
	if _, err := validation.Compile(unsupported); !errors.Is(err, validation.ErrUnsupportedRule) {
		t.Fatalf("expected ErrUnsupportedRule, got %v", err)
	}
}

func TestErrors_ErrorSummary(t *testing.T) {
	errs := validation.Errors{
		"a": {Field: "a", Kind: validation.KindRequired},
		"b": {Field: "b", Kind: validation.KindFormat},
		"c": {Field: "c", Kind: validation.KindLength},
		"d": {Field: "d", Kind: validation.KindRequired},
	}
	want := "required at a; format at b; length at c; ... (total 4)"
	if got := errs.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
