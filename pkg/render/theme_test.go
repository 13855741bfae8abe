package render

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
			"gap":   "4px",
		},
		Templates: map[string]string{
			"forms.field": "themes/acme/field.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "theme.dark.css",
					},
				},
			},
		},
	}
}

func acmeSelector(t *testing.T) theme.Selector {
	t.Helper()
	provider := theme.NewRegistry()
	if err := provider.Register(acmeManifest()); err != nil {
		t.Fatalf("register manifest: %v", err)
	}
	return theme.Selector{Registry: provider, DefaultTheme: "acme", DefaultVariant: "dark"}
}

func TestResolveTheme_MergesVariant(t *testing.T) {
	cfg, err := ResolveTheme(acmeSelector(t), "", "", map[string]string{
		"forms.field":  "templates/field.tmpl",
		"forms.notice": "templates/notice.tmpl",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.Tokens["gap"] != "4px" {
		t.Fatalf("tokens not merged: %#v", cfg.Tokens)
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived: %#v", cfg.CSSVars)
	}
	if cfg.Partials["forms.field"] != "themes/acme/field.tmpl" || cfg.Partials["forms.notice"] != "templates/notice.tmpl" {
		t.Fatalf("partials not merged: %#v", cfg.Partials)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
	if got := CSSVarsStyle(cfg); got != "--brand: #654321; --gap: 4px" {
		t.Fatalf("unexpected style %q", got)
	}
}

func TestResolveTheme_UnknownFallsBackToDefault(t *testing.T) {
	cfg, err := ResolveTheme(acmeSelector(t), "typo", "", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("expected default theme tokens, got %#v", cfg.Tokens)
	}
}

func TestResolveTheme_Errors(t *testing.T) {
	_, err := ResolveTheme(theme.Selector{Registry: theme.NewRegistry()}, "ghost", "", nil)
	if !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := ResolveTheme(nil, "acme", "", nil); err == nil {
		t.Fatalf("expected error for nil selector")
	}
}

func TestCSSVarsStyle_Empty(t *testing.T) {
	if CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style")
	}
}
