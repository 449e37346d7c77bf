package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Rule checks one field value. all is the full snapshot for rules that need
// sibling values. Rules are pure and return nil when satisfied.
type Rule func(value any, all model.Snapshot) *FieldError

// checker is safe for concurrent use and caches parsed tags.
var checker = validator.New()

// tagRule fails with kind when a non-blank text value does not satisfy the
// validator tag. trim strips surrounding whitespace before the check.
func tagRule(tag string, kind Kind, message string, trim bool) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		text := textOf(value)
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if trim {
			text = strings.TrimSpace(text)
		}
		if err := checker.Var(text, tag); err != nil {
			return fail(kind, message)
		}
		return nil
	}
}

func fail(kind Kind, message string) *FieldError {
	return &FieldError{Kind: kind, Message: message}
}

func textOf(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case time.Time:
		if typed.IsZero() {
			return ""
		}
		return typed.Format(model.DateLayout)
	default:
		return ""
	}
}

// RequiredText fails when the value is empty or whitespace-only.
func RequiredText(message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		if strings.TrimSpace(textOf(value)) == "" {
			return fail(KindRequired, message)
		}
		return nil
	}
}

// RequiredOption fails unless the value is an option with a non-blank label.
// The empty-string default counts as absent.
func RequiredOption(message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		option, ok := value.(model.OptionRef)
		if !ok || !option.Selected() {
			return fail(KindRequired, message)
		}
		return nil
	}
}

// RequiredList fails when the option list is absent or empty.
func RequiredList(message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		list, ok := value.([]model.OptionRef)
		if !ok || len(list) == 0 {
			return fail(KindRequired, message)
		}
		return nil
	}
}

// RequiredDate fails when the value is absent or not a calendar date.
func RequiredDate(message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		if !isDate(value) {
			return fail(KindRequired, message)
		}
		return nil
	}
}

// Date fails with a format error when a non-empty value is not a calendar
// date.
func Date(message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		if strings.TrimSpace(textOf(value)) == "" {
			return nil
		}
		if !isDate(value) {
			return fail(KindFormat, message)
		}
		return nil
	}
}

func isDate(value any) bool {
	switch typed := value.(type) {
	case time.Time:
		return !typed.IsZero()
	case string:
		if strings.TrimSpace(typed) == "" {
			return false
		}
		_, err := model.ParseDate(typed)
		return err == nil
	default:
		return false
	}
}

// Email fails with a format error when a non-empty value is not a
// syntactically valid address.
func Email(message string) Rule {
	return tagRule("email", KindFormat, message, true)
}

// Digits fails with a format error when a non-empty value holds anything
// other than ASCII digits.
func Digits(message string) Rule {
	return tagRule("number", KindFormat, message, false)
}

// Pattern fails with a format error when a non-empty value does not match re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		text := textOf(value)
		if text == "" || re == nil {
			return nil
		}
		if !re.MatchString(text) {
			return fail(KindFormat, message)
		}
		return nil
	}
}

// MinLength fails with a length error when a non-empty value has fewer than
// n characters (or a list fewer than n entries).
func MinLength(n int, message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		size, empty := lengthOf(value)
		if empty {
			return nil
		}
		if size < n {
			return fail(KindLength, message)
		}
		return nil
	}
}

// MaxLength fails with a length error when a value has more than n
// characters (or a list more than n entries).
func MaxLength(n int, message string) Rule {
	return func(value any, _ model.Snapshot) *FieldError {
		size, empty := lengthOf(value)
		if empty {
			return nil
		}
		if size > n {
			return fail(KindLength, message)
		}
		return nil
	}
}

func lengthOf(value any) (int, bool) {
	if list, ok := value.([]model.OptionRef); ok {
		return len(list), len(list) == 0
	}
	text := textOf(value)
	return utf8.RuneCountInString(text), text == ""
}
