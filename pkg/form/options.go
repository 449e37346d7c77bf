package form

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Option customises Form construction.
type Option func(*options)

type options struct {
	model            model.FormModel
	schema           *validation.Schema
	mandatory        model.OptionRef
	acceptor         Acceptor
	logger           *slog.Logger
	rejectDuplicates bool
	eager            bool
	submitTimeout    time.Duration
	newID            func() string
}

func defaultOptions() options {
	return options{
		model:  model.UserProfileForm(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		eager:  true,
		newID:  uuid.NewString,
	}
}

// WithFormModel replaces the built-in user profile definition.
func WithFormModel(form model.FormModel) Option {
	return func(o *options) {
		o.model = form
	}
}

// WithSchema overrides the schema compiled from the form model.
func WithSchema(schema *validation.Schema) Option {
	return func(o *options) {
		o.schema = schema
	}
}

// WithMandatoryOption sets the option the tag field always contains.
func WithMandatoryOption(option model.OptionRef) Option {
	return func(o *options) {
		o.mandatory = option
	}
}

// WithAcceptor installs the function that receives validated snapshots.
func WithAcceptor(acceptor Acceptor) Option {
	return func(o *options) {
		o.acceptor = acceptor
	}
}

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRejectDuplicateTags makes CreateTag refuse labels whose key already
// exists in the tag field.
func WithRejectDuplicateTags(reject bool) Option {
	return func(o *options) {
		o.rejectDuplicates = reject
	}
}

// WithEagerValidation controls whether edits re-validate the edited field
// before the first submit attempt. Defaults to true.
func WithEagerValidation(eager bool) Option {
	return func(o *options) {
		o.eager = eager
	}
}

// WithSubmitTimeout bounds each accept call. Zero means no deadline.
func WithSubmitTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout >= 0 {
			o.submitTimeout = timeout
		}
	}
}

// WithIDGenerator replaces the submission ID source.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
