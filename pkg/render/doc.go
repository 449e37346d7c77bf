// Package render turns a submitted snapshot into display output. Details is
// the read-only projection; renderers (text, html, json) are looked up by
// name through a Registry.
package render
