// Package validation evaluates form snapshots against declarative per-field
// rules and reports user-facing errors keyed by field name.
package validation
