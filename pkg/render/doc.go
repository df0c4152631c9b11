// Package render holds the renderer contract, the renderer registry and the
// reflective Document model that concrete renderers turn into output.
package render
