package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-scriptlink/internal/loader"
	"github.com/goliatone/go-scriptlink/pkg/document"
	"github.com/goliatone/go-scriptlink/pkg/model"
	"github.com/goliatone/go-scriptlink/pkg/render"
	"github.com/goliatone/go-scriptlink/pkg/renderers/markup"
	"github.com/goliatone/go-scriptlink/pkg/renderers/page"
	"github.com/goliatone/go-scriptlink/pkg/validation"
)

// ErrInvalidOption wraps validation failures reported by Process.
var ErrInvalidOption = errors.New("orchestrator: option failed validation")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader document.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field. Unknown names keep the registry's own default.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.log = logger
	}
}

// WithValidation makes every request validate its option before
// operations run.
func WithValidation(enabled bool) Option {
	return func(o *Orchestrator) {
		o.validate = enabled
	}
}

// WithTransformers registers transformers that run after the request
// operations.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// Orchestrator coordinates the pipeline from an Option document to mutated
// Option and optional rendered output.
type Orchestrator struct {
	loader          document.Loader
	registry        *render.Registry
	defaultRenderer string
	log             *zap.Logger
	validate        bool
	transformers    []Transformer
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one pass through the pipeline. The option is taken from
// Option, Document or Source, in that order of preference.
type Request struct {
	// Option is used as is when set. It is mutated in place.
	Option model.FormsContainer

	// Document bypasses the loader when the payload is already in memory.
	Document *document.Document

	// Source identifies where the Option document lives.
	Source document.Source

	// Legacy decodes documents as the legacy Option generation.
	Legacy bool

	// Validate checks the option before operations run, in addition to the
	// orchestrator-wide WithValidation setting.
	Validate bool

	// Operations are applied in order after validation.
	Operations []Operation

	// Render asks for rendered output. Renderer picks the renderer by name,
	// falling back to the configured default.
	Render        bool
	Renderer      string
	RenderOptions render.RenderOptions
}

// Result is the outcome of Process.
type Result struct {
	Option      model.FormsContainer
	Output      []byte
	ContentType string
	Validation  *validation.ValidationResult
}

// Process resolves the option, validates it when asked, applies the
// operations and transformers and renders the result when requested.
func (o *Orchestrator) Process(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	option, err := o.resolveOption(ctx, req)
	if err != nil {
		return Result{}, err
	}
	result := Result{Option: option}
	o.log.Debug("Option resolved", zap.Int("forms", len(option.FormList())), zap.Bool("legacy", isLegacy(option)))

	if o.validate || req.Validate {
		report := validation.ValidateOption(option)
		result.Validation = &report
		if !report.Valid {
			o.log.Warn("Option failed validation", zap.Int("issues", len(report.Issues)))
			return result, fmt.Errorf("%w: %w", ErrInvalidOption, report.Err())
		}
	}

	if len(req.Operations) > 0 {
		if err := Apply(option, req.Operations...); err != nil {
			return result, err
		}
		for _, op := range req.Operations {
			o.log.Debug("Operation applied", zap.Stringer("operation", op))
		}
	}
	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		if err := transformer.Transform(ctx, option); err != nil {
			return result, fmt.Errorf("orchestrator: transform option: %w", err)
		}
	}

	if !req.Render {
		return result, nil
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return result, err
	}
	output, err := renderer.Render(ctx, option, req.RenderOptions)
	if err != nil {
		return result, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.log.Debug("Option rendered", zap.String("renderer", renderer.Name()), zap.Int("bytes", len(output)))

	result.Output = output
	result.ContentType = renderer.ContentType()
	return result, nil
}

// Render is a shortcut for rendering entity with a registered renderer.
func (o *Orchestrator) Render(ctx context.Context, entity any, rendererName string, opts render.RenderOptions) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, entity, opts)
}

// Registry exposes the renderer registry so callers can add renderers
// after construction.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveOption(ctx context.Context, req Request) (model.FormsContainer, error) {
	if req.Option != nil {
		return req.Option, nil
	}

	var doc document.Document
	switch {
	case req.Document != nil:
		doc = *req.Document
	case req.Source != nil:
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load document: %w", err)
		}
		doc = loaded
	default:
		return nil, errors.New("orchestrator: option, document or source is required")
	}

	option, err := document.Decode(doc, req.Legacy)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode option: %w", err)
	}
	return option, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(document.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry(markup.New())
		renderer, err := page.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer != "" {
		if err := o.registry.SetDefault(o.defaultRenderer); err != nil {
			o.log.Warn("Default renderer unavailable",
				zap.String("renderer", o.defaultRenderer),
				zap.String("fallback", o.registry.DefaultName()),
				zap.Error(err))
		}
	}

	o.defaultsApplied = true
}

func isLegacy(option model.FormsContainer) bool {
	_, ok := option.(*model.LegacyOption)
	return ok
}
