package tui

import (
	"log/slog"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithGenderOptions sets the choices offered for the gender field.
func WithGenderOptions(options []model.OptionRef) Option {
	return WithChoices(model.FieldGender, options)
}

// WithChoices sets the choices offered for a single-option field.
func WithChoices(field model.FieldName, options []model.OptionRef) Option {
	return func(s *Session) {
		if len(options) > 0 {
			s.choices[field] = model.CloneOptions(options)
		}
	}
}

// WithTechOptions sets the predefined entries offered for the tag field.
func WithTechOptions(options []model.OptionRef) Option {
	return func(s *Session) {
		s.techOptions = model.CloneOptions(options)
	}
}

// WithRenderer selects the renderer used for submitted details.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithDetailsOptions controls the submitted details projection.
func WithDetailsOptions(opts render.DetailsOptions) Option {
	return func(s *Session) {
		s.details = opts
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
