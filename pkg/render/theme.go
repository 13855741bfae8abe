package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ResolveTheme selects name/variant through selector and returns the
// renderer-facing config built by the selection. Templates missing from the
// theme resolve to fallbacks.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("render: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, theme.ErrThemeNotFound)
	}
	cfg := selection.RendererTheme(fallbacks)
	return &cfg, nil
}

// CSSVarsStyle renders CSS custom properties as an inline style attribute
// value, sorted by name so output is deterministic.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cfg.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}
