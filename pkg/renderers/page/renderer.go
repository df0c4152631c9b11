package page

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-scriptlink/pkg/render"
	rendertemplate "github.com/goliatone/go-scriptlink/pkg/render/template"
	"github.com/goliatone/go-scriptlink/pkg/render/template/gotemplate"
)

const (
	// Name is the registry key of the page renderer.
	Name = "page"

	pageTemplate     = "page"
	fragmentTemplate = "blocks"
)

// Option configures the page renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// page.tpl and blocks.tpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the embedded default stylesheet.
// RenderOptions.Stylesheet still wins per call.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

// Renderer produces styled HTML pages through the template engine. Cell
// values are stripped of markup rather than escaped.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{stylesheet: defaultStylesheet()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithFilter("sanitize", filterSanitize),
			gotemplate.WithBannedTags("ssi"),
		)
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, stylesheet: cfg.stylesheet}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, entity any, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("page renderer: template renderer is nil")
	}

	doc, err := render.BuildDocument(entity)
	if err != nil {
		return nil, err
	}
	if opts.Title != "" {
		doc.Title = opts.Title
	}

	stylesheet := r.stylesheet
	if opts.Stylesheet != "" {
		stylesheet = opts.Stylesheet
	}

	name := fragmentTemplate
	if opts.IncludeDocument {
		name = pageTemplate
	}
	result, err := r.templates.RenderTemplate(name, newView(doc, stylesheet))
	if err != nil {
		return nil, fmt.Errorf("page renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type view struct {
	Title      string      `json:"title"`
	Stylesheet string      `json:"stylesheet,omitempty"`
	Blocks     []viewBlock `json:"blocks"`
}

type viewBlock struct {
	Heading string        `json:"heading,omitempty"`
	Tag     string        `json:"tag,omitempty"`
	Table   *render.Table `json:"table,omitempty"`
}

// newView precomputes heading tags since levels lose their integer type on
// the way into the template context. Empty tables keep an empty rows list so
// loops in the template always see a slice.
func newView(doc render.Document, stylesheet string) view {
	out := view{Title: doc.Title, Stylesheet: stylesheet, Blocks: make([]viewBlock, 0, len(doc.Blocks))}
	for _, block := range doc.Blocks {
		if block.Table != nil {
			table := *block.Table
			if table.Rows == nil {
				table.Rows = [][]string{}
			}
			out.Blocks = append(out.Blocks, viewBlock{Table: &table})
			continue
		}
		out.Blocks = append(out.Blocks, viewBlock{Heading: block.Heading, Tag: headingTag(block.Level)})
	}
	return out
}

func headingTag(level int) string {
	switch {
	case level < 2:
		level = 2
	case level > 6:
		level = 6
	}
	return fmt.Sprintf("h%d", level)
}
