package form

import "errors"

var (
	// ErrUnknownField is returned when a field name is not part of the form.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidValue is returned when a value does not fit the field type.
	ErrInvalidValue = errors.New("form: invalid value")
	// ErrSubmitPending is returned by Submit while a submission is in flight.
	ErrSubmitPending = errors.New("form: submission pending")
	// ErrAcceptorRequired is returned by New when no Acceptor is configured.
	ErrAcceptorRequired = errors.New("form: acceptor is required")
	// ErrAcceptPanic wraps a panic recovered from an Acceptor.
	ErrAcceptPanic = errors.New("form: acceptor panicked")
)

// FailureMessage is the form-level message shown after a failed accept.
const FailureMessage = "Submission failed, please try again"
