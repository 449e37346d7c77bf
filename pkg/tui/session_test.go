package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

type stubDriver struct {
	mu sync.Mutex

	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool

	inputPos   int
	selectPos  int
	multiPos   int
	confirmPos int

	selectConfigs []SelectConfig
	multiConfigs  []SelectConfig
	infoMessages  []string
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiConfigs = append(s.multiConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.infoMessages...)
}

var adaInputs = []string{"Ada", "Lovelace", "ada@example.com", "9876543210", "1815-12-10"}

func newSession(t *testing.T, driver *stubDriver, acceptor form.Acceptor, opts ...form.Option) (*Session, *form.Form) {
	t.Helper()
	f, err := form.New(append([]form.Option{form.WithAcceptor(acceptor)}, opts...)...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, f
}

func TestSession_SubmitsAndRendersDetails(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "Lovelace", "ada@example.com", "12a", "9876543210", "1815-12-10", "Go", "   "},
		selectIdx: []int{1, 0},
		multiIdx:  [][]int{{0}},
		confirm:   []bool{true, true, false},
	}
	recorder := &testsupport.RecordingAcceptor{}
	s, f := newSession(t, driver, recorder)

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := strings.Join([]string{
		"Submitted Details",
		"First Name: Ada",
		"Last Name: Lovelace",
		"Email: ada@example.com",
		"Phone: +91 9876543210",
		"Gender: Female",
		"Date of Birth: 1815-12-10",
		"Tech Stack: JavaScript, Go",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"Invalid Phone (+91): Phone number must be only digits",
		`Added "Go" to tech stack`,
		"Tech stack name cannot be empty",
		"Submitting...",
	}
	if diff := cmp.Diff(wantInfo, driver.messages()); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"JavaScript (required)"}, driver.multiConfigs[0].Options); diff != "" {
		t.Fatalf("tech options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, driver.multiConfigs[0].Defaults); diff != "" {
		t.Fatalf("tech defaults mismatch (-want +got):\n%s", diff)
	}
	if len(recorder.Snapshots()) != 1 {
		t.Fatalf("expected one accepted snapshot")
	}
	if f.Phase() != form.PhaseSubmitted {
		t.Fatalf("expected submitted, got %s", f.Phase())
	}
}

func TestSession_OtherGenderEntry(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "Lovelace", "ada@example.com", "9876543210", "  ", " Non-binary ", "1815-12-10"},
		selectIdx: []int{3, 3, 0},
		multiIdx:  [][]int{{0}},
		confirm:   []bool{false},
	}
	recorder := &testsupport.RecordingAcceptor{}
	s, f := newSession(t, driver, recorder)

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(string(out), "Gender: Non-binary") {
		t.Fatalf("expected custom gender, got:\n%s", out)
	}

	wantOptions := []string{"Male", "Female", "Other", "Other..."}
	if diff := cmp.Diff(wantOptions, driver.selectConfigs[0].Options); diff != "" {
		t.Fatalf("gender options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Gender cannot be empty", "Submitting..."}, driver.messages()); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	got, _ := f.Values().Option(model.FieldGender)
	if diff := cmp.Diff(model.Option("nonbinary", "Non-binary"), got); diff != "" {
		t.Fatalf("gender mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_OtherGenderOfferedAgainAfterRejection(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"", "Lovelace", "ada@example.com", "9876543210", "Agender", "1815-12-10",
			"Ada", "Lovelace", "ada@example.com", "9876543210", "1815-12-10",
		},
		selectIdx: []int{3, 0, 3, 0},
		multiIdx:  [][]int{{0}, {0}},
		confirm:   []bool{false, false},
	}
	s, _ := newSession(t, driver, &testsupport.RecordingAcceptor{})

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(string(out), "Gender: Agender") {
		t.Fatalf("expected custom gender kept, got:\n%s", out)
	}

	second := driver.selectConfigs[2]
	if diff := cmp.Diff([]string{"Male", "Female", "Other", "Agender", "Other..."}, second.Options); diff != "" {
		t.Fatalf("second round options mismatch (-want +got):\n%s", diff)
	}
	if second.DefaultIndex != 3 {
		t.Fatalf("expected custom gender preselected, got %d", second.DefaultIndex)
	}
}

func TestSession_DuplicateTagMessage(t *testing.T) {
	driver := &stubDriver{
		inputs:    append(append([]string(nil), adaInputs...), "Java Script"),
		selectIdx: []int{0, 0},
		multiIdx:  [][]int{{0}},
		confirm:   []bool{true, false},
	}
	s, f := newSession(t, driver, &testsupport.RecordingAcceptor{}, form.WithRejectDuplicateTags(true))

	if !f.Tags().RejectsDuplicates() {
		t.Fatalf("expected duplicate rejection to be enabled")
	}
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{`"Java Script" is already in tech stack`, "Submitting..."}
	if diff := cmp.Diff(want, driver.messages()); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"JavaScript (required)"}, driver.multiConfigs[0].Options); diff != "" {
		t.Fatalf("tech options mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_CancelAborts(t *testing.T) {
	driver := &stubDriver{
		inputs:    adaInputs,
		selectIdx: []int{0, 2},
		multiIdx:  [][]int{{}},
		confirm:   []bool{false},
	}
	recorder := &testsupport.RecordingAcceptor{}
	s, _ := newSession(t, driver, recorder)

	if _, err := s.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if len(recorder.Snapshots()) != 0 {
		t.Fatalf("cancel must not submit")
	}
}

func TestSession_FailedSubmissionReturnsToMenu(t *testing.T) {
	driver := &stubDriver{
		inputs:    adaInputs,
		selectIdx: []int{2, 0, 2},
		multiIdx:  [][]int{{0}},
		confirm:   []bool{false},
	}
	s, f := newSession(t, driver, &testsupport.RecordingAcceptor{Err: errors.New("down")})

	if _, err := s.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if diff := cmp.Diff([]string{"Submitting...", form.FailureMessage}, driver.messages()); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if got, _ := f.Values().Option(model.FieldGender); got.Value != "other" {
		t.Fatalf("unexpected gender %+v", got)
	}
}

func TestSession_ResetRestartsPrompts(t *testing.T) {
	second := []string{"Grace", "Hopper", "grace@example.com", "1234567890", "1906-12-09"}
	driver := &stubDriver{
		inputs:    append(append([]string(nil), adaInputs...), second...),
		selectIdx: []int{1, 1, 1, 0},
		multiIdx:  [][]int{{0}, {0}},
		confirm:   []bool{false, false},
	}
	s, _ := newSession(t, driver, &testsupport.RecordingAcceptor{})

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(string(out), "First Name: Grace") {
		t.Fatalf("expected second round values, got:\n%s", out)
	}
	if diff := cmp.Diff([]string{"Form reset", "Submitting..."}, driver.messages()); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSession_RequiresForm(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrFormRequired) {
		t.Fatalf("expected ErrFormRequired, got %v", err)
	}
}
