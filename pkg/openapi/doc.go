// Package openapi exposes the contracts used to load OpenAPI documents and
// extract the object schema a form is built from. Implementations live under
// internal/openapi to keep kin-openapi out of the public API; construction
// helpers live in the root formstate package.
package openapi
