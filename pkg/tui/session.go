// Package tui drives a form from the terminal: it prompts for every field,
// reports field errors inline and renders the submitted details.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/multivalue"
	"github.com/goliatone/go-formstate/pkg/render"
)

const (
	actionSubmit = "Submit"
	actionReset  = "Reset"
	actionCancel = "Cancel"

	mandatorySuffix = "(required)"
	otherChoice     = "Other..."
)

var actions = []string{actionSubmit, actionReset, actionCancel}

// Session is one interactive run over a Form.
type Session struct {
	form        *form.Form
	driver      PromptDriver
	renderer    render.Renderer
	details     render.DetailsOptions
	choices     map[model.FieldName][]model.OptionRef
	techOptions []model.OptionRef
	logger      *slog.Logger
}

// NewSession prepares a session. Defaults: survey driver, text renderer,
// the profile gender and tech stack choices.
func NewSession(f *form.Form, opts ...Option) (*Session, error) {
	if f == nil {
		return nil, ErrFormRequired
	}
	s := &Session{
		form:        f,
		choices:     map[model.FieldName][]model.OptionRef{model.FieldGender: model.DefaultGenderOptions()},
		techOptions: model.DefaultTechOptions(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.renderer == nil {
		text, err := render.NewTextRenderer()
		if err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
		s.renderer = text
	}
	return s, nil
}

// Run prompts until the form is submitted, returning the rendered details.
// Cancel and Ctrl+C return ErrAborted.
func (s *Session) Run(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	for {
		if err := s.collect(ctx); err != nil {
			return nil, err
		}
		out, restart, err := s.act(ctx)
		if err != nil {
			return nil, err
		}
		if restart {
			continue
		}
		return out, nil
	}
}

func (s *Session) collect(ctx context.Context) error {
	tagField := s.form.TagField()
	for _, field := range s.form.Model().Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch {
		case field.Name == tagField:
			err = s.promptTags(ctx, field)
		case field.IsOptionList():
			s.logger.Warn("tui.field.skip", slog.String("field", string(field.Name)))
		case field.IsOption():
			err = s.promptChoice(ctx, field)
		default:
			err = s.promptText(ctx, field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) label(field model.Field) string {
	label := field.Label
	if label == "" {
		label = model.DefaultLabeler(string(field.Name))
	}
	if prefix := s.prefixFor(field); prefix != "" {
		label = fmt.Sprintf("%s (%s)", label, prefix)
	}
	return label
}

func (s *Session) prefixFor(field model.Field) string {
	if field.Name == model.FieldPhone && s.details.ISDPrefix != "" {
		if s.details.ISDPrefix == "-" {
			return ""
		}
		return s.details.ISDPrefix
	}
	return field.Metadata[model.MetadataDisplayPrefix]
}

func (s *Session) promptText(ctx context.Context, field model.Field) error {
	label := s.label(field)
	help := field.Description
	if field.IsDate() && help == "" {
		help = "Format: YYYY-MM-DD"
	}
	for {
		response, err := s.driver.Input(ctx, InputConfig{
			Message: label,
			Default: s.form.Values().Text(field.Name),
			Help:    help,
		})
		if err != nil {
			return err
		}
		if err := s.form.SetField(field.Name, strings.TrimSpace(response)); err != nil {
			return err
		}
		if fe, ok := s.form.ErrorFor(field.Name); ok {
			_ = s.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", label, fe.Message))
			continue
		}
		return nil
	}
}

func (s *Session) promptChoice(ctx context.Context, field model.Field) error {
	options := s.choices[field.Name]
	if len(options) == 0 {
		s.logger.Warn("tui.field.no_choices", slog.String("field", string(field.Name)))
		return nil
	}
	current, hasCurrent := s.form.Values().Option(field.Name)
	if hasCurrent {
		options = mergeOptions(options, []model.OptionRef{current})
	}
	labels := append(model.OptionLabels(options), otherChoice)
	defaultIndex := 0
	if hasCurrent {
		if idx := model.IndexOfOption(options, current.Value); idx >= 0 {
			defaultIndex = idx
		}
	}
	message := s.label(field)
	if field.Placeholder != "" {
		message = field.Placeholder
	}
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return err
		}
		switch {
		case idx == len(options):
			option, ok, err := s.promptOther(ctx, field)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			return s.form.SetField(field.Name, option)
		case idx < 0 || idx > len(options):
			_ = s.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", s.label(field)))
			continue
		}
		return s.form.SetField(field.Name, options[idx])
	}
}

// promptOther asks for a free-text choice. ok is false for blank input.
func (s *Session) promptOther(ctx context.Context, field model.Field) (model.OptionRef, bool, error) {
	raw, err := s.driver.Input(ctx, InputConfig{Message: s.label(field)})
	if err != nil {
		return model.OptionRef{}, false, err
	}
	label := strings.TrimSpace(raw)
	key := multivalue.DeriveKey(label)
	if key == "" {
		_ = s.driver.Info(ctx, fmt.Sprintf("%s cannot be empty", s.label(field)))
		return model.OptionRef{}, false, nil
	}
	return model.Option(key, label), true, nil
}

func (s *Session) promptTags(ctx context.Context, field model.Field) error {
	current := s.form.Values().Options(field.Name)
	choices := mergeOptions(s.techOptions, current)
	labels := s.form.Tags().Labels(choices, mandatorySuffix)
	var defaults []int
	for i, option := range choices {
		if model.ContainsOption(current, option) {
			defaults = append(defaults, i)
		}
	}

	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  s.label(field),
		Options:  labels,
		Defaults: defaults,
		Help:     fmt.Sprintf("%s is always included", s.form.Mandatory().Label),
	})
	if err != nil {
		return err
	}
	selected := make([]model.OptionRef, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(choices) {
			selected = append(selected, choices[idx])
		}
	}
	if err := s.form.SelectTags(selected); err != nil {
		return err
	}
	return s.promptCreate(ctx, field)
}

func (s *Session) promptCreate(ctx context.Context, field model.Field) error {
	name := model.SentenceLabeler(string(field.Name))
	noun := strings.ToLower(name)
	for {
		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Add a %s entry?", noun)})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		raw, err := s.driver.Input(ctx, InputConfig{Message: fmt.Sprintf("%s name", name)})
		if err != nil {
			return err
		}
		created, ok := s.form.CreateTag(raw)
		switch {
		case ok:
			_ = s.driver.Info(ctx, fmt.Sprintf("Added %q to %s", created.Label, noun))
		case strings.TrimSpace(raw) == "":
			_ = s.driver.Info(ctx, fmt.Sprintf("%s name cannot be empty", name))
		case s.form.Tags().RejectsDuplicates():
			_ = s.driver.Info(ctx, fmt.Sprintf("%q is already in %s", strings.TrimSpace(raw), noun))
		default:
			_ = s.driver.Info(ctx, fmt.Sprintf("Could not add %q to %s", strings.TrimSpace(raw), noun))
		}
	}
}

// act shows the action menu. restart asks Run to prompt the fields again.
func (s *Session) act(ctx context.Context) (out []byte, restart bool, err error) {
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: actions})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(actions) {
			_ = s.driver.Info(ctx, "Invalid selection")
			continue
		}

		switch actions[idx] {
		case actionCancel:
			return nil, false, ErrAborted
		case actionReset:
			s.form.Reset()
			_ = s.driver.Info(ctx, "Form reset")
			return nil, true, nil
		}

		result, err := s.submit(ctx)
		if err != nil {
			return nil, false, err
		}
		switch {
		case result.Stale:
			return nil, true, nil
		case result.Phase == form.PhaseRejected:
			s.reportErrors(ctx, result)
			return nil, true, nil
		case result.Phase == form.PhaseFailed:
			_ = s.driver.Info(ctx, s.form.FormError())
			continue
		}

		snapshot, ok := s.form.Submitted()
		if !ok {
			snapshot = result.Snapshot
		}
		rendered, err := s.renderer.Render(ctx, render.NewDetails(snapshot, s.details))
		if err != nil {
			return nil, false, err
		}
		return rendered, false, nil
	}
}

func (s *Session) submit(ctx context.Context) (form.Result, error) {
	unsubscribe := s.form.Subscribe(func(e form.Event) {
		if e.Type == form.EventPhase && e.Phase == form.PhasePending {
			_ = s.driver.Info(ctx, "Submitting...")
		}
	})
	defer unsubscribe()

	sub, err := s.form.Submit(ctx)
	if err != nil {
		return form.Result{}, err
	}
	s.logger.Debug("tui.submit", slog.String("submission_id", sub.ID()))
	return sub.Wait(ctx)
}

func (s *Session) reportErrors(ctx context.Context, result form.Result) {
	_ = s.driver.Info(ctx, "Please fix the following:")
	for _, field := range s.form.Model().Fields {
		if fe, ok := result.Errors.Get(field.Name); ok {
			_ = s.driver.Info(ctx, fmt.Sprintf("  %s: %s", s.label(field), fe.Message))
		}
	}
}

func mergeOptions(base, extra []model.OptionRef) []model.OptionRef {
	out := model.CloneOptions(base)
	for _, option := range extra {
		if !model.ContainsOption(out, option) {
			out = append(out, option)
		}
	}
	return out
}
