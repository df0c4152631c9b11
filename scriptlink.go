package scriptlink

import (
	"context"

	internalLoader "github.com/goliatone/go-scriptlink/internal/loader"
	"github.com/goliatone/go-scriptlink/pkg/document"
	"github.com/goliatone/go-scriptlink/pkg/model"
	"github.com/goliatone/go-scriptlink/pkg/orchestrator"
	"github.com/goliatone/go-scriptlink/pkg/render"
)

// Option is the revised ScriptLink payload carrying a session token.
type Option = model.Option

// LegacyOption is the original ScriptLink payload.
type LegacyOption = model.LegacyOption

// Form, Row and Field alias the data model for callers that only import the
// root package.
type (
	Form  = model.Form
	Row   = model.Row
	Field = model.Field
)

// FormsContainer is satisfied by both Option generations.
type FormsContainer = model.FormsContainer

// RenderOptions describes per-request overrides understood by renderers.
type RenderOptions = render.RenderOptions

// Operation describes one mutation applied by the orchestrator.
type Operation = orchestrator.Operation

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...document.LoaderOption) document.Loader {
	cfg := document.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// Render describes entity with the named renderer, falling back to the
// markup renderer when rendererName is empty.
func Render(ctx context.Context, entity any, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Render(ctx, entity, rendererName, opts)
}

// RenderSource loads the Option document at source, applies ops and renders
// the result. Legacy documents are decoded when legacy is set.
func RenderSource(ctx context.Context, source document.Source, legacy bool, rendererName string, opts RenderOptions, ops []Operation, options ...orchestrator.Option) ([]byte, error) {
	result, err := orchestrator.New(options...).Process(ctx, orchestrator.Request{
		Source:        source,
		Legacy:        legacy,
		Operations:    ops,
		Render:        true,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
