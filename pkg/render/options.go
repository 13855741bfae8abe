package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use to customise their
// output without touching the form.
type RenderOptions struct {
	// Action is the URL button clicks post to. Renderers that cannot submit
	// ignore it.
	Action string
	// Notices are user-visible messages raised by the last click, shown above
	// the form.
	Notices []string
	// Theme carries resolved theme tokens and partial overrides.
	Theme *theme.RendererConfig
}
