package markup

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-scriptlink/pkg/model"
	"github.com/goliatone/go-scriptlink/pkg/render"
)

const (
	// Name is the registry key of the markup renderer.
	Name = "markup"
	// ContentType is the media type of the rendered output.
	ContentType = "text/html; charset=utf-8"
)

var headingAtoms = [...]atom.Atom{atom.H1, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// Renderer turns ScriptLink entities into nested HTML tables.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the markup renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return ContentType
}

// Render describes entity and writes it as HTML. Any struct is accepted;
// non-struct values fail with render.ErrUnsupportedEntity.
func (r *Renderer) Render(ctx context.Context, entity any, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := render.BuildDocument(entity)
	if err != nil {
		return nil, err
	}
	if opts.Title != "" {
		doc.Title = opts.Title
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, opts.IncludeDocument); err != nil {
		return nil, fmt.Errorf("markup: write: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serialises doc. With includeDocument the output is wrapped in
// html, head and body elements; otherwise it is a fragment.
func Write(w io.Writer, doc render.Document, includeDocument bool) error {
	nodes := Nodes(doc)
	if includeDocument {
		body := element(atom.Body, nodes...)
		return html.Render(w, element(atom.Html, element(atom.Head), body))
	}
	for _, node := range nodes {
		if err := html.Render(w, node); err != nil {
			return err
		}
	}
	return nil
}

// Nodes builds the HTML tree for doc: an h1 with the title followed by a
// heading or table per block.
func Nodes(doc render.Document) []*html.Node {
	nodes := []*html.Node{element(atom.H1, text(doc.Title))}
	for _, block := range doc.Blocks {
		switch {
		case block.Table != nil:
			nodes = append(nodes, table(*block.Table))
		case block.Heading != "":
			nodes = append(nodes, element(headingAtom(block.Level), text(block.Heading)))
		}
	}
	return nodes
}

// RenderField renders a single field as a Property/Value table.
func RenderField(field model.Field, includeDocument bool) string {
	return mustRender(field, includeDocument)
}

// RenderRow renders the row summary and its fields table.
func RenderRow(row model.Row, includeDocument bool) string {
	return mustRender(row, includeDocument)
}

// RenderForm renders the form summary, its current row and each other row
// with that row's own fields.
func RenderForm(form model.Form, includeDocument bool) string {
	return mustRender(form, includeDocument)
}

// RenderOption renders either option generation. A nil container renders
// nothing beyond the optional document wrapper.
func RenderOption(option model.FormsContainer, includeDocument bool) string {
	if option == nil {
		var buf bytes.Buffer
		if includeDocument {
			_ = html.Render(&buf, element(atom.Html, element(atom.Head), element(atom.Body)))
		}
		return buf.String()
	}
	return mustRender(option, includeDocument)
}

// mustRender serves the typed helpers, whose arguments are always structs.
func mustRender(entity any, includeDocument bool) string {
	doc, err := render.BuildDocument(entity)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := Write(&buf, doc, includeDocument); err != nil {
		return ""
	}
	return buf.String()
}

func table(t render.Table) *html.Node {
	header := element(atom.Tr)
	for _, name := range t.Headers {
		header.AppendChild(element(atom.Th, text(name)))
	}
	body := element(atom.Tbody)
	for _, row := range t.Rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			tr.AppendChild(element(atom.Td, text(cell)))
		}
		body.AppendChild(tr)
	}
	return element(atom.Table, element(atom.Thead, header), body)
}

func headingAtom(level int) atom.Atom {
	if level < 1 {
		level = 1
	}
	if level >= len(headingAtoms) {
		level = len(headingAtoms) - 1
	}
	return headingAtoms[level]
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	node := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, child := range children {
		node.AppendChild(child)
	}
	return node
}

func text(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}
