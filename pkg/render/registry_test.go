package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/program"
)

type stubRenderer struct {
	name    string
	options RenderOptions
}

func (s *stubRenderer) Name() string        { return s.name }
func (s *stubRenderer) ContentType() string { return "text/plain" }

func (s *stubRenderer) Render(_ context.Context, form *interp.Form, opts RenderOptions) ([]byte, error) {
	s.options = opts
	return []byte(strings.Repeat("x", form.Len())), nil
}

func TestRegistry_DefaultIsFirstRegistered(t *testing.T) {
	registry, err := NewRegistry(&stubRenderer{name: "b"}, &stubRenderer{name: "a"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if registry.Default() != "b" {
		t.Fatalf("expected default b, got %q", registry.Default())
	}
	if diff := cmp.Diff([]string{"a", "b"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	if err := registry.SetDefault("a"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	got, err := registry.Get("")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got.Name() != "a" {
		t.Fatalf("expected a, got %s", got.Name())
	}
	if err := registry.SetDefault("missing"); err == nil {
		t.Fatalf("expected error for unknown default")
	}
}

func TestRegistry_RejectsDuplicatesAndNil(t *testing.T) {
	registry, _ := NewRegistry()
	registry.MustRegister(&stubRenderer{name: "a"})
	if err := registry.Register(&stubRenderer{name: "a"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := registry.Register(&stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := registry.Get("zzz"); err == nil || !strings.Contains(err.Error(), "available: [a]") {
		t.Fatalf("expected not found error listing names, got %v", err)
	}
	if !registry.Has("a") || registry.Has("zzz") {
		t.Fatalf("Has mismatch")
	}
}

func TestRegistry_Render(t *testing.T) {
	stub := &stubRenderer{name: "stub"}
	registry, _ := NewRegistry(stub)

	form, err := interp.Render(program.Sample(), nil)
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	out, renderer, err := registry.Render(context.Background(), "", form, RenderOptions{Action: "/click"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer != stub || string(out) != "xxx" || stub.options.Action != "/click" {
		t.Fatalf("unexpected render result %q %+v", out, stub.options)
	}
}
