package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/program"
	"github.com/goliatone/go-forminterp/pkg/render"
	htmlrenderer "github.com/goliatone/go-forminterp/pkg/renderers/html"
	textrenderer "github.com/goliatone/go-forminterp/pkg/renderers/text"
)

const defaultRendererName = htmlrenderer.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom program loader.
func WithLoader(loader *program.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs before interpretation.
// Transformers run in registration order.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithThemeSelector resolves request themes into renderer config.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider. Unknown theme
// names fall back to defaultTheme.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// WithThemeFallbacks supplies template names used when a theme does not
// override them. They are merged over the built-in fallbacks.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		for key, value := range fallbacks {
			o.themeFallbacks[key] = value
		}
	}
}

// WithLogger routes pipeline and interpreter diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInterpOptions appends options to every interpreter render call.
func WithInterpOptions(options ...interp.Option) Option {
	return func(o *Orchestrator) {
		o.interpOptions = append(o.interpOptions, options...)
	}
}

// Orchestrator coordinates the full pipeline from program source to rendered
// output. It applies sensible defaults (html and text renderers, embedded
// templates) while remaining open to dependency injection.
type Orchestrator struct {
	loader          *program.Loader
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	logger          *zap.Logger
	interpOptions   []interp.Option
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		themeFallbacks:  defaultThemeFallbacks(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form.
type Request struct {
	// Source identifies where the program lives. Optional when Program is set.
	Source program.Source

	// Program bypasses the loader when the caller already holds one.
	Program *program.Program

	// Controller receives button clicks. Nil renders buttons whose clicks raise
	// the missing-callback notice.
	Controller *interp.Controller

	// Notifier receives notices raised by clicks on the built form.
	Notifier interp.Notifier

	// Renderer names the renderer to use, falling back to the default.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request renderer instructions.
	RenderOptions render.RenderOptions
}

// Build loads, transforms and interprets the program without rendering it.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*interp.Form, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	prog, err := o.resolveProgram(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, &prog); err != nil {
			return nil, fmt.Errorf("orchestrator: transform program: %w", err)
		}
	}

	options := append([]interp.Option{interp.WithLogger(o.logger)}, o.interpOptions...)
	if req.Notifier != nil {
		options = append(options, interp.WithNotifier(req.Notifier))
	}
	form, err := interp.Render(prog, req.Controller, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: interpret program: %w", err)
	}
	return form, nil
}

// Generate executes the loader → interpreter → renderer sequence and returns
// the rendered bytes (HTML for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.RenderForm(ctx, form, req)
}

// RenderForm renders an already built form, resolving the request theme.
func (o *Orchestrator) RenderForm(ctx context.Context, form *interp.Form, req Request) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil && o.themeSelector != nil {
		cfg, err := render.ResolveTheme(o.themeSelector, req.ThemeName, req.ThemeVariant, o.themeFallbacks)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: resolve theme: %w", err)
		}
		options.Theme = cfg
	}

	o.logger.Debug("render form",
		zap.String("program", form.ProgramName()),
		zap.String("renderer", renderer.Name()),
		zap.Int("fields", form.Len()),
	)
	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the renderer a request naming name would use.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

func (o *Orchestrator) resolveProgram(ctx context.Context, req Request) (program.Program, error) {
	if req.Program != nil {
		return req.Program.Clone(), nil
	}
	if req.Source == nil {
		return program.Program{}, errors.New("orchestrator: source or program is required")
	}
	prog, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return program.Program{}, fmt.Errorf("orchestrator: load program: %w", err)
	}
	return prog, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Get("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.loader == nil {
		o.loader = program.NewLoader()
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// defaultThemeFallbacks lists the partials renderers look up in a theme.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		htmlrenderer.FormPartial: htmlrenderer.FormTemplate,
	}
}

// DefaultRegistry returns a registry holding the html (default) and text
// renderers.
func DefaultRegistry() (*render.Registry, error) {
	html, err := htmlrenderer.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	registry, err := render.NewRegistry(html, textrenderer.New())
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default registry: %w", err)
	}
	return registry, nil
}
