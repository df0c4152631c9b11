package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scriptlink/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string { return s.name }
func (s stubRenderer) ContentType() string {
	if s.contentType == "" {
		return "text/plain"
	}
	return s.contentType
}
func (s stubRenderer) Render(context.Context, any, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_Register(t *testing.T) {
	registry := render.NewRegistry(stubRenderer{name: "page"})
	registry.MustRegister(stubRenderer{name: "markup", contentType: "text/html"})

	if err := registry.Register(stubRenderer{name: "markup"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to be rejected")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected unnamed renderer to be rejected")
	}

	if diff := cmp.Diff([]string{"markup", "page"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("page") || registry.Has("json") {
		t.Fatalf("unexpected Has results")
	}

	want := map[string]string{"markup": "text/html", "page": "text/plain"}
	if diff := cmp.Diff(want, registry.ContentTypes()); diff != "" {
		t.Fatalf("content types mismatch (-want +got):\n%s", diff)
	}

	if _, err := registry.Get("json"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected NewRegistry to panic on duplicates")
		}
	}()
	render.NewRegistry(stubRenderer{name: "a"}, stubRenderer{name: "a"})
}

func TestRegistry_Default(t *testing.T) {
	empty := render.NewRegistry()
	if _, err := empty.Resolve(""); err == nil {
		t.Fatalf("expected empty registry to have no default")
	}
	if got := empty.DefaultName(); got != "" {
		t.Fatalf("expected no default name, got %q", got)
	}

	registry := render.NewRegistry(stubRenderer{name: "page"}, stubRenderer{name: "markup"})
	if got := registry.DefaultName(); got != "page" {
		t.Fatalf("expected first registered renderer to be the default, got %q", got)
	}

	if err := registry.SetDefault("json"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if err := registry.SetDefault("markup"); err != nil {
		t.Fatalf("set default: %v", err)
	}

	renderer, err := registry.Resolve("")
	if err != nil {
		t.Fatalf("resolve default: %v", err)
	}
	if renderer.Name() != "markup" {
		t.Fatalf("expected markup default, got %q", renderer.Name())
	}

	renderer, err = registry.Resolve("page")
	if err != nil || renderer.Name() != "page" {
		t.Fatalf("expected named lookup to win, got %v", err)
	}
	if _, err := registry.Resolve("json"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
