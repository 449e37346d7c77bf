// Package form owns the state of a single data-entry form: field values,
// dirty/touched flags, per-field errors and the submission lifecycle.
//
// All mutations are serialised on the Form. The injected Acceptor runs on
// its own goroutine so the form stays editable while a submission is
// pending; completions from superseded submissions are discarded.
package form
