// Package template defines the template engine contract used by page
// renderers. The gotemplate subpackage provides a pongo2-backed engine.
package template
