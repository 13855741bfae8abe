// Package forminterp renders declarative form programs into live forms whose
// buttons dispatch to controller callbacks.
//
// Quick start:
//
//	html, err := forminterp.GenerateHTML(ctx, program.SourceFromFile("login.json"), controller)
package forminterp

import (
	"context"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/orchestrator"
	"github.com/goliatone/go-forminterp/pkg/program"
	"github.com/goliatone/go-forminterp/pkg/render"
)

// Program aliases program.Program for callers that only import the root.
type Program = program.Program

// FieldDescriptor aliases program.FieldDescriptor.
type FieldDescriptor = program.FieldDescriptor

// Form aliases interp.Form.
type Form = interp.Form

// Controller aliases interp.Controller.
type Controller = interp.Controller

// Callback aliases interp.Callback.
type Callback = interp.Callback

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// ErrMalformedProgram is returned for programs without a fields list.
var ErrMalformedProgram = program.ErrMalformedProgram

// Render interprets prog against controller. See interp.Render.
func Render(prog Program, controller *Controller, options ...interp.Option) (*Form, error) {
	return interp.Render(prog, controller, options...)
}

// NewController copies callbacks into a new Controller.
func NewController(callbacks map[string]Callback) *Controller {
	return interp.NewController(callbacks)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// DefaultRegistry returns the built-in html and text renderers.
func DefaultRegistry() (*render.Registry, error) {
	return orchestrator.DefaultRegistry()
}

// GenerateHTML loads the program at source, interprets it against controller
// and renders it with the html renderer.
func GenerateHTML(ctx context.Context, source program.Source, controller *Controller, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:     source,
		Controller: controller,
		Renderer:   "html",
	})
}
