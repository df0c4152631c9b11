package markup_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-scriptlink/pkg/model"
	"github.com/goliatone/go-scriptlink/pkg/render"
	"github.com/goliatone/go-scriptlink/pkg/renderers/markup"
)

func threeFieldRow() model.Row {
	return model.Row{
		RowID:       "R1",
		ParentRowID: "P1",
		RowAction:   model.RowActionEdit,
		Fields: []model.Field{
			{FieldNumber: "1.1", FieldValue: "a", Enabled: "1", Required: "0", Lock: "0"},
			{FieldNumber: "1.2", FieldValue: "b", Enabled: "1", Required: "1", Lock: "0"},
			{FieldNumber: "1.3", FieldValue: "c", Enabled: "0", Required: "0", Lock: "1"},
		},
	}
}

func parse(t *testing.T, markupText string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markupText))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func findAll(node *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return out
}

func textOf(node *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return sb.String()
}

func TestRenderField(t *testing.T) {
	field := model.Field{FieldNumber: "1.1", FieldValue: "a", Enabled: "1", Required: "0", Lock: "0"}

	want := "<h1>model.Field</h1>" +
		"<table><thead><tr><th>Property</th><th>Value</th></tr></thead><tbody>" +
		"<tr><td>FieldNumber</td><td>1.1</td></tr>" +
		"<tr><td>FieldValue</td><td>a</td></tr>" +
		"<tr><td>Enabled</td><td>1</td></tr>" +
		"<tr><td>Required</td><td>0</td></tr>" +
		"<tr><td>Lock</td><td>0</td></tr>" +
		"</tbody></table>"

	if diff := cmp.Diff(want, markup.RenderField(field, false)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}

	wrapped := markup.RenderField(field, true)
	if !strings.HasPrefix(wrapped, "<html><head></head><body><h1>") || !strings.HasSuffix(wrapped, "</body></html>") {
		t.Fatalf("expected document wrapper, got %q", wrapped)
	}
}

func TestRenderRow_TableShape(t *testing.T) {
	root := parse(t, markup.RenderRow(threeFieldRow(), true))

	tables := findAll(root, atom.Table)
	if len(tables) != 2 {
		t.Fatalf("expected summary and fields tables, got %d", len(tables))
	}
	fields := tables[1]

	headerRows := findAll(findAll(fields, atom.Thead)[0], atom.Tr)
	if len(headerRows) != 1 {
		t.Fatalf("expected one header row, got %d", len(headerRows))
	}
	var headers []string
	for _, th := range findAll(headerRows[0], atom.Th) {
		headers = append(headers, textOf(th))
	}
	if diff := cmp.Diff([]string{"FieldNumber", "FieldValue", "Enabled", "Required", "Lock"}, headers); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}

	dataRows := findAll(findAll(fields, atom.Tbody)[0], atom.Tr)
	if len(dataRows) != 3 {
		t.Fatalf("expected 3 data rows, got %d", len(dataRows))
	}
	if got := textOf(findAll(dataRows[2], atom.Td)[1]); got != "c" {
		t.Fatalf("expected third row value c, got %q", got)
	}

	headings := findAll(root, atom.H2)
	if len(headings) != 1 || textOf(headings[0]) != "Fields" {
		t.Fatalf("expected a Fields heading")
	}
}

func TestRenderForm_NilCurrentRow(t *testing.T) {
	form := model.Form{FormID: "F1"}

	out := markup.RenderForm(form, false)
	root := parse(t, out)

	tables := findAll(root, atom.Table)
	if len(tables) != 2 {
		t.Fatalf("expected form summary and empty current row table, got %d", len(tables))
	}
	if rows := findAll(findAll(tables[1], atom.Tbody)[0], atom.Tr); len(rows) != 0 {
		t.Fatalf("expected empty current row table, got %d rows", len(rows))
	}
	if !strings.Contains(out, "<h2>OtherRows</h2>") {
		t.Fatalf("expected OtherRows heading, got %q", out)
	}

	emptyFields := markup.RenderRow(model.Row{RowID: "R1"}, false)
	if !strings.Contains(emptyFields, "<h2>Fields</h2><table><thead><tr><th>FieldNumber</th>") {
		t.Fatalf("expected header row for empty field list, got %q", emptyFields)
	}
}

func TestRenderForm_OtherRowsUseTheirOwnFields(t *testing.T) {
	current := threeFieldRow()
	form := model.Form{
		FormID:            "F1",
		MultipleIteration: true,
		CurrentRow:        &current,
		OtherRows: []model.Row{
			{RowID: "R2", Fields: []model.Field{{FieldNumber: "2.1", FieldValue: "other-only"}}},
			{RowID: "R3"},
		},
	}

	root := parse(t, markup.RenderForm(form, false))

	var tableTexts []string
	for _, tbl := range findAll(root, atom.Table) {
		tableTexts = append(tableTexts, textOf(tbl))
	}
	// form, current row, current fields, R2, R2 fields, R3, R3 fields
	if len(tableTexts) != 7 {
		t.Fatalf("expected 7 tables, got %d", len(tableTexts))
	}
	if !strings.Contains(tableTexts[4], "other-only") || strings.Contains(tableTexts[4], "1.1") {
		t.Fatalf("expected R2 fields table to hold only R2 fields, got %q", tableTexts[4])
	}
	if len(findAll(findAll(root, atom.Table)[6], atom.Td)) != 0 {
		t.Fatalf("expected R3 fields table to be empty")
	}
}

func TestRenderOption_BothGenerations(t *testing.T) {
	row := threeFieldRow()
	option := &model.Option{
		Header:       model.Header{OptionID: "USER100"},
		SessionToken: "token",
		Forms:        []model.Form{{FormID: "F1", CurrentRow: &row}},
	}

	revised := markup.RenderOption(option, true)
	legacy := markup.RenderOption(option.ToLegacy(), true)

	if !strings.Contains(revised, "<h1>model.Option</h1>") || !strings.Contains(legacy, "<h1>model.LegacyOption</h1>") {
		t.Fatalf("expected type names as titles")
	}
	if !strings.Contains(revised, "<td>SessionToken</td>") || strings.Contains(legacy, "SessionToken") {
		t.Fatalf("expected session token only on the revised option")
	}
	for _, out := range []string{revised, legacy} {
		if !strings.Contains(out, "<h2>Forms</h2><h3>Form</h3>") {
			t.Fatalf("expected form section, got %q", out)
		}
		if !strings.Contains(out, "<td>OptionID</td><td>USER100</td>") {
			t.Fatalf("expected header attributes in summary")
		}
	}

	var nilOption *model.Option
	if out := markup.RenderOption(nilOption, false); out != "<h1>model.Option</h1><table><thead><tr><th>Property</th><th>Value</th></tr></thead><tbody></tbody></table>" {
		t.Fatalf("unexpected nil option markup %q", out)
	}
	if out := markup.RenderOption(nil, true); out != "<html><head></head><body></body></html>" {
		t.Fatalf("unexpected nil container markup %q", out)
	}
}

func TestRender_EscapesValues(t *testing.T) {
	field := model.Field{FieldNumber: "1", FieldValue: `<script>alert("x")</script>`, Enabled: "1"}

	out := markup.RenderField(field, false)
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected value to be escaped, got %q", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag, got %q", out)
	}
}

func TestRenderer(t *testing.T) {
	r := markup.New()
	if r.Name() != "markup" || !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected renderer identity %q %q", r.Name(), r.ContentType())
	}

	out, err := r.Render(context.Background(), threeFieldRow(), render.RenderOptions{Title: "Row R1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(out), "<h1>Row R1</h1>") {
		t.Fatalf("expected title override, got %q", out)
	}

	if _, err := r.Render(context.Background(), "text", render.RenderOptions{}); !errors.Is(err, render.ErrUnsupportedEntity) {
		t.Fatalf("expected ErrUnsupportedEntity, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, threeFieldRow(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
