package render

import (
	"context"
)

// Renderer converts a ScriptLink entity (Field, Row, Form or either Option
// generation) into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, entity any, options RenderOptions) ([]byte, error)
}
