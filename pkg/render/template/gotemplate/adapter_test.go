package gotemplate

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-forminterp/pkg/testsupport"
)

func newEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	fsys := fstest.MapFS{
		"hello.tmpl":      &fstest.MapFile{Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": &fstest.MapFile{Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": &fstest.MapFile{Data: []byte("{{ name|shout }}")},
		"escape.tmpl":     &fstest.MapFile{Data: []byte("{{ name }}|{{ secret|mask }}")},
	}
	engine, err := New(append([]Option{WithFS(fsys)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	got, written := testsupport.CaptureOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if got != "Hello Ada!" || written != got {
		t.Fatalf("unexpected output %q / %q", got, written)
	}
}

func TestEngine_StructDataUsesJSONTags(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}

	got, err := engine.RenderTemplate("hello.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Grace!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))
	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_AutoescapeAndMask(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"name": "<b>", "secret": "abc"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "&lt;b&gt;|***" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString("{{ a }}-{{ b|trim }}", map[string]any{"a": 1, "b": "  x "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "1-x" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
