package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C or Cancel).
	ErrAborted = errors.New("tui: aborted")
	// ErrFormRequired is returned by NewSession without a form.
	ErrFormRequired = errors.New("tui: form is required")
)
