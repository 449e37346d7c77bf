package form

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/multivalue"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Form is the state store for one form instance. It is safe for concurrent
// use.
type Form struct {
	mu sync.Mutex

	model    model.FormModel
	fields   map[model.FieldName]model.Field
	order    []model.FieldName
	tagField model.FieldName
	schema   *validation.Schema
	tags     *multivalue.Controller
	acceptor Acceptor
	logger   *slog.Logger
	eager    bool
	timeout  time.Duration
	newID    func() string

	values    map[model.FieldName]any
	dirty     map[model.FieldName]bool
	touched   map[model.FieldName]bool
	errors    validation.Errors
	phase     Phase
	formError string
	submitted *model.Snapshot
	attempts  int

	generation uint64
	pending    *Submission

	subscribers    []subscriber
	nextSubscriber int
	queue          []func()
	draining       bool
}

// New builds a Form. An Acceptor is required.
func New(opts ...Option) (*Form, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.acceptor == nil {
		return nil, ErrAcceptorRequired
	}
	if len(cfg.model.Fields) == 0 {
		return nil, fmt.Errorf("form: model %q has no fields", cfg.model.ID)
	}

	schema := cfg.schema
	if schema == nil {
		compiled, err := validation.Compile(cfg.model)
		if err != nil {
			return nil, fmt.Errorf("form: compile schema: %w", err)
		}
		schema = compiled
	}

	var tagOpts []multivalue.Option
	if cfg.rejectDuplicates {
		tagOpts = append(tagOpts, multivalue.WithRejectDuplicates())
	}

	f := &Form{
		model:    cfg.model,
		fields:   make(map[model.FieldName]model.Field, len(cfg.model.Fields)),
		order:    cfg.model.Names(),
		schema:   schema,
		tags:     multivalue.New(cfg.mandatory, tagOpts...),
		acceptor: cfg.acceptor,
		logger:   cfg.logger,
		eager:    cfg.eager,
		timeout:  cfg.submitTimeout,
		newID:    cfg.newID,
	}
	for _, field := range cfg.model.Fields {
		f.fields[field.Name] = field
		if f.tagField == "" && field.IsOptionList() {
			f.tagField = field.Name
		}
	}
	f.resetLocked()
	return f, nil
}

// Model returns the form definition.
func (f *Form) Model() model.FormModel {
	return f.model
}

// Mandatory returns the option the tag field always contains.
func (f *Form) Mandatory() model.OptionRef {
	return f.tags.Mandatory()
}

// Tags returns the controller guarding the tag field.
func (f *Form) Tags() *multivalue.Controller {
	return f.tags
}

// TagField returns the name of the list field guarded by the mandatory
// option, or "" when the form has none.
func (f *Form) TagField() model.FieldName {
	return f.tagField
}

func (f *Form) defaults() map[model.FieldName]any {
	values := make(map[model.FieldName]any, len(f.order))
	for _, name := range f.order {
		field := f.fields[name]
		switch {
		case name == f.tagField:
			values[name] = f.tags.Initial()
		case field.IsOptionList():
			values[name] = []model.OptionRef{}
		default:
			if text, ok := field.Default.(string); ok && !field.IsOption() {
				values[name] = text
				continue
			}
			values[name] = ""
		}
	}
	return values
}

func (f *Form) resetLocked() {
	f.values = f.defaults()
	f.dirty = make(map[model.FieldName]bool)
	f.touched = make(map[model.FieldName]bool)
	f.errors = validation.Errors{}
	f.phase = PhaseIdle
	f.formError = ""
	f.submitted = nil
	f.pending = nil
	f.attempts = 0
	f.generation++
}

func (f *Form) snapshotLocked() model.Snapshot {
	return model.NewFormSnapshot(f.model, f.values)
}

// Values returns a read-only snapshot of the current values.
func (f *Form) Values() model.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// SetField updates one field. Text and date fields take strings (dates also
// time.Time); option fields take OptionRef, *OptionRef or "" to unset;
// list fields take []OptionRef. Writes to the tag field keep the mandatory
// option present.
func (f *Form) SetField(name model.FieldName, value any) error {
	field, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	normalized, err := f.normalize(field, value)
	if err != nil {
		return err
	}
	return f.mutate(func() ([]Event, error) {
		return f.commitLocked(name, normalized), nil
	})
}

// SelectTags replaces the tag field list.
func (f *Form) SelectTags(options []model.OptionRef) error {
	if f.tagField == "" {
		return fmt.Errorf("%w: form has no tag field", ErrUnknownField)
	}
	return f.SetField(f.tagField, options)
}

// CreateTag adds an option built from raw to the tag field. It reports false
// for blank input, rejected duplicates or forms without a tag field.
func (f *Form) CreateTag(raw string) (model.OptionRef, bool) {
	if f.tagField == "" {
		return model.OptionRef{}, false
	}
	var (
		created model.OptionRef
		ok      bool
	)
	_ = f.mutate(func() ([]Event, error) {
		current, _ := f.values[f.tagField].([]model.OptionRef)
		var next []model.OptionRef
		next, created, ok = f.tags.CreateAndAdd(current, raw)
		if !ok {
			return nil, nil
		}
		return f.commitLocked(f.tagField, next), nil
	})
	return created, ok
}

// RemoveTag removes option from the tag field. The mandatory option is
// never removed.
func (f *Form) RemoveTag(option model.OptionRef) bool {
	if f.tagField == "" {
		return false
	}
	var ok bool
	_ = f.mutate(func() ([]Event, error) {
		current, _ := f.values[f.tagField].([]model.OptionRef)
		var next []model.OptionRef
		next, ok = f.tags.Remove(current, option)
		if !ok {
			return nil, nil
		}
		return f.commitLocked(f.tagField, next), nil
	})
	return ok
}

// IsRemovable reports whether option may be removed from the tag field.
func (f *Form) IsRemovable(option model.OptionRef) bool {
	return f.tags.IsRemovable(option)
}

func (f *Form) commitLocked(name model.FieldName, value any) []Event {
	f.values[name] = value
	f.dirty[name] = true
	f.touched[name] = true
	if (f.eager || f.attempts > 0) && f.schema.Has(name) {
		fe, _ := f.schema.ValidateField(name, f.snapshotLocked())
		if fe != nil {
			f.errors[name] = *fe
		} else {
			delete(f.errors, name)
		}
	}
	return []Event{{Type: EventField, Field: name, Phase: f.phase}}
}

func (f *Form) normalize(field model.Field, value any) (any, error) {
	invalid := func() error {
		return fmt.Errorf("%w: %s does not accept %T", ErrInvalidValue, field.Name, value)
	}
	switch {
	case field.IsOptionList():
		list, ok := value.([]model.OptionRef)
		if !ok && value != nil {
			return nil, invalid()
		}
		if field.Name == f.tagField {
			return f.tags.Select(list), nil
		}
		if list == nil {
			return []model.OptionRef{}, nil
		}
		return model.CloneOptions(list), nil
	case field.IsOption():
		switch typed := value.(type) {
		case model.OptionRef:
			return typed, nil
		case *model.OptionRef:
			if typed == nil {
				return "", nil
			}
			return *typed, nil
		case string:
			if typed == "" {
				return "", nil
			}
		case nil:
			return "", nil
		}
		return nil, invalid()
	case field.IsDate():
		switch typed := value.(type) {
		case time.Time, string:
			return typed, nil
		case nil:
			return "", nil
		}
		return nil, invalid()
	default:
		switch typed := value.(type) {
		case string:
			return typed, nil
		case nil:
			return "", nil
		}
		return nil, invalid()
	}
}

// Reset restores the initial values and clears errors, flags, the form
// error and any submitted snapshot. It is valid in every phase; an accept
// call still in flight completes as stale.
func (f *Form) Reset() {
	_ = f.mutate(func() ([]Event, error) {
		f.resetLocked()
		f.logger.Debug("form.reset", slog.Uint64("generation", f.generation))
		return []Event{{Type: EventReset, Phase: PhaseIdle}}, nil
	})
}

// ErrorFor returns the current error of name.
func (f *Form) ErrorFor(name model.FieldName) (validation.FieldError, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Get(name)
}

// Errors returns a copy of all current field errors.
func (f *Form) Errors() validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// Dirty reports whether name was edited since construction or the last
// reset.
func (f *Form) Dirty(name model.FieldName) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty[name]
}

// Touched reports whether name received any edit since the last reset.
func (f *Form) Touched(name model.FieldName) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[name]
}
