package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-scriptlink/internal/loader"
	"github.com/goliatone/go-scriptlink/pkg/document"
	"github.com/goliatone/go-scriptlink/pkg/forms"
	"github.com/goliatone/go-scriptlink/pkg/model"
	"github.com/goliatone/go-scriptlink/pkg/orchestrator"
	"github.com/goliatone/go-scriptlink/pkg/render"
)

const optionJSON = `{
  "OptionId": "USER100",
  "SessionToken": "abc",
  "Forms": [
    {
      "FormId": "1",
      "MultipleIteration": false,
      "CurrentRow": {
        "RowId": "1||1",
        "ParentRowId": "",
        "RowAction": "",
        "Fields": [
          {"FieldNumber": "100.1", "FieldValue": "a", "Enabled": "1", "Required": "0", "Lock": "0"}
        ]
      },
      "OtherRows": []
    }
  ]
}`

func fixtureLoader() document.Loader {
	files := fstest.MapFS{"option.json": {Data: []byte(optionJSON)}}
	return loader.New(document.NewLoaderOptions(document.WithFileSystem(files)))
}

func TestProcess_LoadMutateRender(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := orchestrator.New(
		orchestrator.WithLoader(fixtureLoader()),
		orchestrator.WithLogger(zap.New(core)),
	)

	result, err := o.Process(context.Background(), orchestrator.Request{
		Source:     document.SourceFromFS("option.json"),
		Operations: []orchestrator.Operation{{Kind: orchestrator.OpSetValue, FormID: "1", Fields: []string{"100.1"}, Value: "b"}},
		Render:     true,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	option, ok := result.Option.(*model.Option)
	if !ok {
		t.Fatalf("expected revised option, got %T", result.Option)
	}
	if option.SessionToken != "abc" {
		t.Fatalf("expected session token to survive decoding")
	}
	if got := forms.FieldValue(option.Forms[0], "100.1"); got != "b" {
		t.Fatalf("expected operation to apply, got %q", got)
	}
	if !strings.HasPrefix(result.ContentType, "text/html") {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	if !strings.Contains(string(result.Output), "<h1>model.Option</h1>") || !strings.Contains(string(result.Output), "<td>b</td>") {
		t.Fatalf("expected markup output with the new value\n%s", result.Output)
	}

	if logs.FilterMessage("Operation applied").Len() != 1 {
		t.Fatalf("expected operation to be logged, got %v", logs.All())
	}
	if logs.FilterMessage("Option rendered").FilterField(zap.String("renderer", "markup")).Len() != 1 {
		t.Fatalf("expected render to be logged with renderer name")
	}
}

func TestProcess_LegacyDocument(t *testing.T) {
	doc := document.MustNewDocument(document.SourceFromFS("option.json"), []byte(optionJSON))
	o := orchestrator.New(orchestrator.WithLogger(zaptest.NewLogger(t)))

	result, err := o.Process(context.Background(), orchestrator.Request{
		Document:   &doc,
		Legacy:     true,
		Operations: []orchestrator.Operation{{Kind: orchestrator.OpDisableAll}},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	legacy, ok := result.Option.(*model.LegacyOption)
	if !ok {
		t.Fatalf("expected legacy option, got %T", result.Option)
	}
	if forms.IsFieldEnabled(legacy.Forms[0], "100.1") {
		t.Fatalf("expected disable-all to apply")
	}
	if result.Output != nil {
		t.Fatalf("expected no output without Render")
	}
}

func TestProcess_Validation(t *testing.T) {
	option := &model.Option{Forms: []model.Form{{
		FormID:     "1",
		CurrentRow: &model.Row{Fields: []model.Field{{FieldNumber: "1", Enabled: "0", Required: "1"}}},
	}}}
	o := orchestrator.New(orchestrator.WithValidation(true), orchestrator.WithLogger(zaptest.NewLogger(t)))

	result, err := o.Process(context.Background(), orchestrator.Request{
		Option:     option,
		Operations: []orchestrator.Operation{{Kind: orchestrator.OpEnable, Fields: []string{"1"}}},
	})
	if !errors.Is(err, orchestrator.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if result.Validation == nil || result.Validation.Valid {
		t.Fatalf("expected validation report on the result")
	}
	if forms.IsFieldEnabled(option.Forms[0], "1") {
		t.Fatalf("expected operations to be skipped for invalid options")
	}

	valid := orchestrator.New()
	result, err = valid.Process(context.Background(), orchestrator.Request{
		Option:   &model.Option{Forms: []model.Form{{FormID: "1"}}},
		Validate: true,
	})
	if err != nil || result.Validation == nil || !result.Validation.Valid {
		t.Fatalf("expected per-request validation to pass, got %v", err)
	}
}

func TestProcess_TransformersAndRenderers(t *testing.T) {
	var seen int
	o := orchestrator.New(orchestrator.WithTransformers(orchestrator.TransformerFunc(
		func(_ context.Context, option model.FormsContainer) error {
			seen = len(option.FormList())
			return nil
		},
	)))

	result, err := o.Process(context.Background(), orchestrator.Request{
		Option:        &model.Option{Forms: []model.Form{{FormID: "1"}, {FormID: "2"}}},
		Render:        true,
		Renderer:      "page",
		RenderOptions: render.RenderOptions{IncludeDocument: true},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if seen != 2 {
		t.Fatalf("expected transformer to see both forms, got %d", seen)
	}
	if !strings.Contains(string(result.Output), "<!DOCTYPE html>") {
		t.Fatalf("expected page renderer output")
	}

	_, err = o.Process(context.Background(), orchestrator.Request{
		Option:   &model.Option{},
		Render:   true,
		Renderer: "pdf",
	})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	failing := orchestrator.New(orchestrator.WithTransformers(orchestrator.TransformerFunc(
		func(context.Context, model.FormsContainer) error { return errors.New("boom") },
	)))
	if _, err := failing.Process(context.Background(), orchestrator.Request{Option: &model.Option{}}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transformer error, got %v", err)
	}
}

func TestProcess_Errors(t *testing.T) {
	o := orchestrator.New(orchestrator.WithLoader(fixtureLoader()))

	if _, err := o.Process(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without option, document or source")
	}
	if _, err := o.Process(context.Background(), orchestrator.Request{Source: document.SourceFromFS("missing.json")}); err == nil {
		t.Fatalf("expected load error")
	}

	broken := document.MustNewDocument(document.SourceFromFS("broken.json"), []byte("{"))
	if _, err := o.Process(context.Background(), orchestrator.Request{Document: &broken}); err == nil {
		t.Fatalf("expected decode error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.Process(ctx, orchestrator.Request{Option: &model.Option{}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}

	_, err := o.Process(context.Background(), orchestrator.Request{
		Option:     &model.Option{},
		Operations: []orchestrator.Operation{{Kind: orchestrator.OpLock, FormID: "9", Fields: []string{"1"}}},
	})
	if !errors.Is(err, orchestrator.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestRender_DefaultRenderer(t *testing.T) {
	o := orchestrator.New(orchestrator.WithDefaultRenderer("page"))

	out, err := o.Render(context.Background(), model.Field{FieldNumber: "1"}, "", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "scriptlink-table") {
		t.Fatalf("expected page renderer to be the default\n%s", out)
	}

	if names := o.Registry().List(); len(names) != 2 {
		t.Fatalf("expected markup and page renderers, got %v", names)
	}
}

func TestRender_UnknownDefaultRenderer(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	o := orchestrator.New(
		orchestrator.WithLogger(zap.New(core)),
		orchestrator.WithDefaultRenderer("pdf"),
	)

	if got := o.Registry().DefaultName(); got != "markup" {
		t.Fatalf("expected markup to stay the default, got %q", got)
	}
	if logs.FilterMessage("Default renderer unavailable").Len() != 1 {
		t.Fatalf("expected a warning about the missing renderer")
	}

	custom := render.NewRegistry()
	empty := orchestrator.New(orchestrator.WithRegistry(custom))
	if _, err := empty.Render(context.Background(), model.Field{}, "", render.RenderOptions{}); err == nil {
		t.Fatalf("expected an empty registry to fail rendering")
	}
}
