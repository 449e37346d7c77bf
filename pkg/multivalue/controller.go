// Package multivalue edits list-valued option fields while keeping one
// mandatory option present at all times.
package multivalue

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]`)

// DefaultMandatory is the option every tech stack contains.
var DefaultMandatory = model.Option("javascript", "JavaScript")

// Option customises a Controller.
type Option func(*Controller)

// WithRejectDuplicates makes CreateAndAdd refuse labels whose derived key is
// already in the list.
func WithRejectDuplicates() Option {
	return func(c *Controller) {
		c.rejectDuplicates = true
	}
}

// Controller applies list edits. It holds no list state: every operation
// takes the current list and returns the next one, never aliasing its input.
type Controller struct {
	mandatory        model.OptionRef
	rejectDuplicates bool
}

// New constructs a controller guarding mandatory. A zero mandatory option
// falls back to DefaultMandatory.
func New(mandatory model.OptionRef, opts ...Option) *Controller {
	if mandatory.IsZero() {
		mandatory = DefaultMandatory
	}
	c := &Controller{mandatory: mandatory}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Mandatory returns the guarded option.
func (c *Controller) Mandatory() model.OptionRef {
	return c.mandatory
}

// RejectsDuplicates reports whether CreateAndAdd refuses duplicate keys.
func (c *Controller) RejectsDuplicates() bool {
	return c.rejectDuplicates
}

// Initial returns the starting list: just the mandatory option.
func (c *Controller) Initial() []model.OptionRef {
	return []model.OptionRef{c.mandatory}
}

// Select replaces the whole list. Caller order is kept and the mandatory
// option is appended last when missing.
func (c *Controller) Select(options []model.OptionRef) []model.OptionRef {
	next := make([]model.OptionRef, 0, len(options)+1)
	next = append(next, options...)
	if !model.ContainsOption(next, c.mandatory) {
		next = append(next, c.mandatory)
	}
	return next
}

// CreateAndAdd appends a new option built from rawLabel. Whitespace-only
// input is a no-op reported with ok=false.
func (c *Controller) CreateAndAdd(current []model.OptionRef, rawLabel string) (next []model.OptionRef, created model.OptionRef, ok bool) {
	base := c.Select(current)
	label := strings.TrimSpace(rawLabel)
	if label == "" {
		return base, model.OptionRef{}, false
	}
	created = model.Option(DeriveKey(label), label)
	if c.rejectDuplicates && model.IndexOfOption(base, created.Value) >= 0 {
		return base, model.OptionRef{}, false
	}
	return append(base, created), created, true
}

// Remove drops every entry sharing option's value. The mandatory option is
// never removed.
func (c *Controller) Remove(current []model.OptionRef, option model.OptionRef) ([]model.OptionRef, bool) {
	base := c.Select(current)
	if !c.IsRemovable(option) {
		return base, false
	}
	next := base[:0]
	removed := false
	for _, entry := range base {
		if entry.Same(option) {
			removed = true
			continue
		}
		next = append(next, entry)
	}
	return next, removed
}

// IsRemovable reports whether option may be removed: false exactly for the
// mandatory option.
func (c *Controller) IsRemovable(option model.OptionRef) bool {
	return !option.Same(c.mandatory)
}

// DeriveKey lower-cases label and strips everything outside [A-Za-z0-9_].
func DeriveKey(label string) string {
	return nonWord.ReplaceAllString(strings.ToLower(label), "")
}

// Labels returns the display label for each option, marking the mandatory one.
func (c *Controller) Labels(options []model.OptionRef, mandatorySuffix string) []string {
	out := make([]string, 0, len(options))
	for _, option := range options {
		label := option.Label
		if mandatorySuffix != "" && !c.IsRemovable(option) {
			label += " " + mandatorySuffix
		}
		out = append(out, label)
	}
	return out
}
