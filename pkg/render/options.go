package render

// RenderOptions describe per-request choices that renderers can use to
// customise their output.
type RenderOptions struct {
	// IncludeDocument wraps the markup in a complete document instead of
	// returning a fragment.
	IncludeDocument bool
	// Title overrides the document title. Renderers fall back to the entity
	// type name when empty.
	Title string
	// Stylesheet is inlined by renderers that produce full pages.
	Stylesheet string
}
