package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrUnknownField is returned by ValidateField for names the schema does
	// not declare.
	ErrUnknownField = errors.New("validation: unknown field")
	// ErrUnsupportedRule reports a validation rule kind Compile cannot map.
	ErrUnsupportedRule = errors.New("validation: unsupported rule")
)

// Schema is a declarative, ordered set of per-field rules. The first failing
// rule of a field wins. A Schema is immutable once compiled and safe for
// concurrent use.
type Schema struct {
	order []model.FieldName
	rules map[model.FieldName][]Rule
}

// NewSchema returns an empty schema ready for Field calls.
func NewSchema() *Schema {
	return &Schema{rules: make(map[model.FieldName][]Rule)}
}

// Field appends rules for name. Repeated calls extend the existing list.
func (s *Schema) Field(name model.FieldName, rules ...Rule) *Schema {
	if _, ok := s.rules[name]; !ok {
		s.order = append(s.order, name)
	}
	s.rules[name] = append(s.rules[name], rules...)
	return s
}

// Fields returns the declared field names in declaration order.
func (s *Schema) Fields() []model.FieldName {
	return append([]model.FieldName(nil), s.order...)
}

// Has reports whether name is declared.
func (s *Schema) Has(name model.FieldName) bool {
	_, ok := s.rules[name]
	return ok
}

// ValidateField runs the rules for one field against the snapshot. It returns
// nil when the field is valid.
func (s *Schema) ValidateField(name model.FieldName, snapshot model.Snapshot) (*FieldError, error) {
	rules, ok := s.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	value, _ := snapshot.Raw(name)
	for _, rule := range rules {
		if fe := rule(value, snapshot); fe != nil {
			out := *fe
			out.Field = name
			return &out, nil
		}
	}
	return nil, nil
}

// Validate runs every declared field and returns the failing ones. An empty
// result means the snapshot is valid. Validate is pure: the same snapshot
// always yields the same errors.
func (s *Schema) Validate(snapshot model.Snapshot) Errors {
	out := Errors{}
	for _, name := range s.order {
		fe, _ := s.ValidateField(name, snapshot)
		if fe != nil {
			out[name] = *fe
		}
	}
	return out
}

// Compile derives a Schema from a form model. Required fields get a
// type-aware presence rule, format "email" and "date" add format rules, and
// pattern/minLength/maxLength validations follow in declaration order.
func Compile(form model.FormModel) (*Schema, error) {
	schema := NewSchema()
	for _, field := range form.Fields {
		rules, err := compileField(field)
		if err != nil {
			return nil, err
		}
		schema.Field(field.Name, rules...)
	}
	return schema, nil
}

// MustCompile panics when Compile fails. Useful for built-in forms.
func MustCompile(form model.FormModel) *Schema {
	schema, err := Compile(form)
	if err != nil {
		panic(err)
	}
	return schema
}

// DefaultSchema returns the compiled user profile schema.
func DefaultSchema() *Schema {
	return MustCompile(model.UserProfileForm())
}

func compileField(field model.Field) ([]Rule, error) {
	label := model.SentenceLabeler(string(field.Name))
	var rules []Rule

	if field.Required {
		message := metadata(field, model.MetadataRequiredMessage, label+" is required")
		switch {
		case field.IsOptionList():
			rules = append(rules, RequiredList(message))
		case field.IsOption():
			rules = append(rules, RequiredOption(message))
		case field.IsDate():
			rules = append(rules, RequiredDate(message))
		default:
			rules = append(rules, RequiredText(message))
		}
	}

	switch field.Format {
	case model.FormatEmail:
		rules = append(rules, Email(metadata(field, model.MetadataFormatMessage, "Must be a valid "+strings.ToLower(label))))
	case model.FormatDate:
		rules = append(rules, Date(metadata(field, model.MetadataFormatMessage, label+" must be a valid date")))
	}

	for _, rule := range field.Validations {
		compiled, err := compileRule(field.Name, label, rule)
		if err != nil {
			return nil, err
		}
		rules = append(rules, compiled)
	}
	return rules, nil
}

func compileRule(name model.FieldName, label string, rule model.ValidationRule) (Rule, error) {
	switch rule.Kind {
	case model.ValidationRuleDigits:
		return Digits(messageOr(rule, label+" must contain only digits")), nil
	case model.ValidationRulePattern:
		expr := rule.Params["pattern"]
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("validation: field %q: pattern %q: %w", name, expr, err)
		}
		return Pattern(re, messageOr(rule, label+" has an invalid format")), nil
	case model.ValidationRuleMinLength:
		n, err := ruleValue(name, rule)
		if err != nil {
			return nil, err
		}
		return MinLength(n, messageOr(rule, fmt.Sprintf("%s must be at least %d characters", label, n))), nil
	case model.ValidationRuleMaxLength:
		n, err := ruleValue(name, rule)
		if err != nil {
			return nil, err
		}
		return MaxLength(n, messageOr(rule, fmt.Sprintf("%s must be at most %d characters", label, n))), nil
	default:
		return nil, fmt.Errorf("%w: field %q: %q", ErrUnsupportedRule, name, rule.Kind)
	}
}

func ruleValue(name model.FieldName, rule model.ValidationRule) (int, error) {
	raw := rule.Params["value"]
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("validation: field %q: %s value %q must be a non-negative integer", name, rule.Kind, raw)
	}
	return n, nil
}

func messageOr(rule model.ValidationRule, fallback string) string {
	if msg := rule.Message(); msg != "" {
		return msg
	}
	return fallback
}

func metadata(field model.Field, key, fallback string) string {
	if value := field.Metadata[key]; value != "" {
		return value
	}
	return fallback
}
