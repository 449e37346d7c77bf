package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Phase is the submission lifecycle state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseRejected   Phase = "rejected"
	PhasePending    Phase = "pending"
	PhaseSubmitted  Phase = "submitted"
	PhaseFailed     Phase = "failed"
)

// Result is the settled outcome of a submission. Stale results come from
// submissions superseded by Reset or a newer submission; they never touched
// form state.
type Result struct {
	Phase    Phase
	Snapshot model.Snapshot
	Errors   validation.Errors
	Err      error
	Stale    bool
}

// Submission tracks one Submit call until it settles.
type Submission struct {
	id         string
	snapshot   model.Snapshot
	generation uint64

	done   chan struct{}
	once   sync.Once
	result Result
}

func newSubmission(id string, snapshot model.Snapshot, generation uint64) *Submission {
	return &Submission{
		id:         id,
		snapshot:   snapshot,
		generation: generation,
		done:       make(chan struct{}),
	}
}

func (s *Submission) settle(result Result) {
	s.once.Do(func() {
		s.result = result
		close(s.done)
	})
}

// ID returns the submission identifier.
func (s *Submission) ID() string { return s.id }

// Snapshot returns the values captured when the submission was validated.
func (s *Submission) Snapshot() model.Snapshot { return s.snapshot }

// Done is closed once the submission settles.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Result returns the outcome if the submission has settled.
func (s *Submission) Result() (Result, bool) {
	select {
	case <-s.done:
		return s.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the submission settles or ctx is done.
func (s *Submission) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.done:
		return s.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Phase returns the current submission phase.
func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Submitted returns the snapshot handed over at the last Submitted
// transition.
func (f *Form) Submitted() (model.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitted == nil {
		return model.Snapshot{}, false
	}
	return *f.submitted, true
}

// FormError returns the form-level error message, if any.
func (f *Form) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formError
}

func (f *Form) setPhaseLocked(phase Phase) Event {
	f.logger.Debug("form.phase", slog.String("from", string(f.phase)), slog.String("to", string(phase)))
	f.phase = phase
	return Event{Type: EventPhase, Phase: phase}
}

// Submit validates the current values. Invalid values settle the returned
// submission as Rejected and leave the form Idle with errors set. Valid
// values move the form to Pending and hand the snapshot to the Acceptor on a
// new goroutine; ctx is passed to the Acceptor.
func (f *Form) Submit(ctx context.Context) (*Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var sub *Submission
	err := f.mutate(func() ([]Event, error) {
		if f.phase == PhasePending {
			return nil, ErrSubmitPending
		}
		events := []Event{f.setPhaseLocked(PhaseValidating)}

		f.attempts++
		f.generation++
		f.formError = ""
		f.submitted = nil

		snapshot := f.snapshotLocked()
		errs := f.schema.Validate(snapshot)
		f.errors = errs
		sub = newSubmission(f.newID(), snapshot, f.generation)

		if len(errs) > 0 {
			events = append(events, f.setPhaseLocked(PhaseRejected), f.setPhaseLocked(PhaseIdle))
			f.logger.Info("submission.rejected",
				slog.String("submission_id", sub.id),
				slog.String("errors", errs.Error()),
			)
			sub.settle(Result{Phase: PhaseRejected, Snapshot: snapshot, Errors: errs.Clone()})
			return events, nil
		}

		f.pending = sub
		events = append(events, f.setPhaseLocked(PhasePending))
		f.logger.Info("submission.start", slog.String("submission_id", sub.id))
		return events, nil
	}, func() {
		// Pending has reached every observer before the acceptor runs.
		if _, settled := sub.Result(); !settled {
			go f.run(ctx, sub)
		}
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (f *Form) run(ctx context.Context, sub *Submission) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	err := invoke(ctx, f.acceptor, sub.snapshot)
	f.complete(sub, err)
}

func (f *Form) complete(sub *Submission, acceptErr error) {
	result := Result{Phase: PhaseSubmitted, Snapshot: sub.snapshot, Err: acceptErr}
	if acceptErr != nil {
		result.Phase = PhaseFailed
	}

	_ = f.mutate(func() ([]Event, error) {
		if sub.generation != f.generation || f.pending != sub {
			result.Stale = true
			f.logger.Warn("submission.stale",
				slog.String("submission_id", sub.id),
				slog.Uint64("generation", sub.generation),
				slog.Uint64("current", f.generation),
			)
			return nil, nil
		}

		f.pending = nil
		if acceptErr != nil {
			f.formError = FailureMessage
			f.logger.Error("submission.fail",
				slog.String("submission_id", sub.id),
				slog.String("err", acceptErr.Error()),
			)
			return []Event{f.setPhaseLocked(PhaseFailed)}, nil
		}

		snapshot := sub.snapshot
		f.submitted = &snapshot
		f.logger.Info("submission.settle", slog.String("submission_id", sub.id))
		return []Event{f.setPhaseLocked(PhaseSubmitted)}, nil
	}, func() {
		sub.settle(result)
	})
}
