package form_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/testsupport"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func TestSubmit_ValidProfileReachesSubmitted(t *testing.T) {
	gate := testsupport.NewGateAcceptor()
	f := newForm(t, form.WithAcceptor(gate), form.WithIDGenerator(func() string { return "sub-1" }))
	testsupport.Fill(t, f, testsupport.AdaLovelace())

	log := &eventLog{}
	f.Subscribe(log.observe)

	ctx := testsupport.Context(t)
	sub, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.ID() != "sub-1" {
		t.Fatalf("unexpected id %q", sub.ID())
	}

	// Pending is committed and observed before the acceptor runs.
	if diff := cmp.Diff([]form.Phase{form.PhaseValidating, form.PhasePending}, log.phases()); diff != "" {
		t.Fatalf("phases before accept (-want +got):\n%s", diff)
	}

	accepted := <-gate.Started
	if diff := cmp.Diff(testsupport.AdaSnapshot().Map(), accepted.Map()); diff != "" {
		t.Fatalf("accepted snapshot mismatch (-want +got):\n%s", diff)
	}
	if f.Phase() != form.PhasePending {
		t.Fatalf("expected pending while accept runs, got %s", f.Phase())
	}
	if _, err := f.Submit(ctx); !errors.Is(err, form.ErrSubmitPending) {
		t.Fatalf("expected ErrSubmitPending, got %v", err)
	}

	gate.Release(nil)
	result, err := sub.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if result.Phase != form.PhaseSubmitted || result.Stale || result.Err != nil || len(result.Errors) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if f.Phase() != form.PhaseSubmitted {
		t.Fatalf("expected submitted, got %s", f.Phase())
	}
	submitted, ok := f.Submitted()
	if !ok {
		t.Fatalf("expected submitted snapshot")
	}
	if diff := cmp.Diff(testsupport.AdaSnapshot().Map(), submitted.Map()); diff != "" {
		t.Fatalf("submitted snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]form.Phase{form.PhaseValidating, form.PhasePending, form.PhaseSubmitted}, log.phases()); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
	if gate.Calls() != 1 {
		t.Fatalf("expected one accept call, got %d", gate.Calls())
	}
}

func TestSubmit_InvalidPhoneIsRejected(t *testing.T) {
	recorder := &testsupport.RecordingAcceptor{}
	f := newForm(t, form.WithAcceptor(recorder))
	values := testsupport.AdaLovelace()
	values[model.FieldPhone] = "12a"
	testsupport.Fill(t, f, values)

	log := &eventLog{}
	f.Subscribe(log.observe)

	sub, err := f.Submit(testsupport.Context(t))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	result, settled := sub.Result()
	if !settled {
		t.Fatalf("rejected submission should settle immediately")
	}
	if result.Phase != form.PhaseRejected {
		t.Fatalf("expected rejected, got %s", result.Phase)
	}
	want := validation.Errors{
		model.FieldPhone: {Field: model.FieldPhone, Kind: validation.KindFormat, Message: "Phone number must be only digits"},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("result errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]form.Phase{form.PhaseValidating, form.PhaseRejected, form.PhaseIdle}, log.phases()); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
	if f.Phase() != form.PhaseIdle {
		t.Fatalf("expected idle after rejection, got %s", f.Phase())
	}
	if len(recorder.Snapshots()) != 0 {
		t.Fatalf("acceptor must not run for invalid submissions")
	}
}

func TestSubmit_AcceptFailure(t *testing.T) {
	boom := errors.New("backend down")
	f := newForm(t, form.WithAcceptor(&testsupport.RecordingAcceptor{Err: boom}))
	testsupport.Fill(t, f, testsupport.AdaLovelace())

	ctx := testsupport.Context(t)
	sub, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if result.Phase != form.PhaseFailed || !errors.Is(result.Err, boom) {
		t.Fatalf("unexpected result %+v", result)
	}
	if f.Phase() != form.PhaseFailed {
		t.Fatalf("expected failed, got %s", f.Phase())
	}
	if f.FormError() != form.FailureMessage {
		t.Fatalf("unexpected form error %q", f.FormError())
	}
	if _, ok := f.Submitted(); ok {
		t.Fatalf("failed submission must not expose a snapshot")
	}

	// Failed allows a retry.
	retry, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if _, err := retry.Wait(ctx); err != nil {
		t.Fatalf("wait retry: %v", err)
	}
}

func TestSubmit_AcceptPanicIsRecovered(t *testing.T) {
	f := newForm(t, form.WithAcceptor(form.AcceptFunc(func(context.Context, model.Snapshot) error {
		panic("kaboom")
	})))
	testsupport.Fill(t, f, testsupport.AdaLovelace())

	ctx := testsupport.Context(t)
	sub, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !errors.Is(result.Err, form.ErrAcceptPanic) {
		t.Fatalf("expected ErrAcceptPanic, got %v", result.Err)
	}
	if f.Phase() != form.PhaseFailed || f.FormError() != form.FailureMessage {
		t.Fatalf("unexpected state phase=%s error=%q", f.Phase(), f.FormError())
	}
}

func TestSubmit_ResetDiscardsStaleCompletion(t *testing.T) {
	gate := testsupport.NewGateAcceptor()
	f := newForm(t, form.WithAcceptor(gate))
	testsupport.Fill(t, f, testsupport.AdaLovelace())

	ctx := testsupport.Context(t)
	first, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-gate.Started

	f.Reset()
	if f.Phase() != form.PhaseIdle {
		t.Fatalf("reset should be effective immediately, got %s", f.Phase())
	}

	testsupport.Fill(t, f, testsupport.AdaLovelace())
	second, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	<-gate.Started

	gate.Release(nil)
	gate.Release(nil)

	firstResult, err := first.Wait(ctx)
	if err != nil {
		t.Fatalf("wait first: %v", err)
	}
	secondResult, err := second.Wait(ctx)
	if err != nil {
		t.Fatalf("wait second: %v", err)
	}
	if !firstResult.Stale {
		t.Fatalf("first completion should be stale")
	}
	if secondResult.Stale || secondResult.Phase != form.PhaseSubmitted {
		t.Fatalf("unexpected second result %+v", secondResult)
	}
	if f.Phase() != form.PhaseSubmitted {
		t.Fatalf("expected submitted, got %s", f.Phase())
	}
}

func TestSubmit_StaleCompletionLeavesResetStateAlone(t *testing.T) {
	gate := testsupport.NewGateAcceptor()
	f := newForm(t, form.WithAcceptor(gate))
	testsupport.Fill(t, f, testsupport.AdaLovelace())

	ctx := testsupport.Context(t)
	sub, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-gate.Started
	f.Reset()
	gate.Release(errors.New("late failure"))

	result, err := sub.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !result.Stale {
		t.Fatalf("expected stale result")
	}
	if f.Phase() != form.PhaseIdle || f.FormError() != "" {
		t.Fatalf("stale completion changed state: phase=%s error=%q", f.Phase(), f.FormError())
	}
}

func TestSubmit_TimeoutFailsSubmission(t *testing.T) {
	gate := testsupport.NewGateAcceptor()
	f := newForm(t, form.WithAcceptor(gate), form.WithSubmitTimeout(1))
	testsupport.Fill(t, f, testsupport.AdaLovelace())

	ctx := testsupport.Context(t)
	sub, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	result, err := sub.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if result.Phase != form.PhaseFailed || !errors.Is(result.Err, context.DeadlineExceeded) {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestLogAcceptor_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := form.LogAcceptor(nil).Accept(ctx, testsupport.AdaSnapshot())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLogAcceptor_KeepsValuesOutOfInfoLogs(t *testing.T) {
	var info, debug bytes.Buffer
	ctx := context.Background()
	snapshot := testsupport.AdaSnapshot()

	infoLogger := slog.New(slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := form.LogAcceptor(infoLogger).Accept(ctx, snapshot); err != nil {
		t.Fatalf("accept: %v", err)
	}
	out := info.String()
	if !strings.Contains(out, "msg=submission.accepted") || !strings.Contains(out, "email") {
		t.Fatalf("expected field names at info, got %q", out)
	}
	for _, value := range []string{"Lovelace", "ada@example.com", "9876543210"} {
		if strings.Contains(out, value) {
			t.Fatalf("info log leaked %q: %q", value, out)
		}
	}

	debugLogger := slog.New(slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := form.LogAcceptor(debugLogger).Accept(ctx, snapshot); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !strings.Contains(debug.String(), "msg=submission.values") || !strings.Contains(debug.String(), "Lovelace") {
		t.Fatalf("expected values at debug, got %q", debug.String())
	}
}

func TestSubmit_ObserverResetWhilePending(t *testing.T) {
	gate := testsupport.NewGateAcceptor()
	f := newForm(t, form.WithAcceptor(gate))
	testsupport.Fill(t, f, testsupport.AdaLovelace())
	f.Subscribe(func(e form.Event) {
		if e.Type == form.EventPhase && e.Phase == form.PhasePending {
			f.Reset()
		}
	})

	ctx := testsupport.Context(t)
	sub, err := f.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := f.Phase(); got != form.PhaseIdle {
		t.Fatalf("phase after observer reset = %s, want %s", got, form.PhaseIdle)
	}

	<-gate.Started
	gate.Release(nil)
	result, err := sub.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !result.Stale {
		t.Fatalf("expected stale result, got %+v", result)
	}
	if _, ok := f.Submitted(); ok {
		t.Fatalf("stale completion must not record a submitted snapshot")
	}
}
