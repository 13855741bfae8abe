package render

import (
	"context"

	"github.com/goliatone/go-forminterp/pkg/interp"
)

// Renderer converts a rendered form into a byte representation (HTML, a
// terminal preview, a session transcript).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *interp.Form, options RenderOptions) ([]byte, error)
}
