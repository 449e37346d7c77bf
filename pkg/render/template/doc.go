// Package template runs the embedded pongo2 templates behind the text and
// HTML details renderers.
package template
