package forminterp

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-forminterp/pkg/program"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), "forminterp.css"); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
}

func TestEmbeddedTemplatesContainsForm(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.yaml")
	payload := "fields:\n  - name: Email\n    type: string\n  - name: Join\n    type: button\n    callback: join\n    args: [Email]\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}

	html, err := GenerateHTML(context.Background(), program.SourceFromFile(path), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := strings.Count(string(html), `class="field"`); got != 2 {
		t.Fatalf("expected 2 fields, got %d:\n%s", got, html)
	}
}

func TestRenderAndLoad(t *testing.T) {
	src := program.SourceFromBytes("inline", []byte(`{"fields": [{"name": "Go", "type": "button", "callback": "go"}]}`))
	prog, err := LoadProgram(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	calls := 0
	form, err := Render(prog, NewController(map[string]Callback{
		"go": func(...string) error { calls++; return nil },
	}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := form.Click(context.Background(), "Go"); err != nil {
		t.Fatalf("click: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}

	if _, err := Render(Program{}, nil); !errors.Is(err, ErrMalformedProgram) {
		t.Fatalf("expected ErrMalformedProgram, got %v", err)
	}
}
