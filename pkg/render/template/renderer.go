package template

import (
	"io"
)

// TemplateRenderer is the seam the page renderer depends on. Engines execute
// named templates or inline content, copying the result into any supplied
// writers.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
