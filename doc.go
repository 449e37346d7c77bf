// Package formstate is the entry point for building form models from
// OpenAPI documents. The form engine itself lives in pkg/form, validation in
// pkg/validation and the terminal session in pkg/tui.
package formstate
