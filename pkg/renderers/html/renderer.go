package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/program"
	"github.com/goliatone/go-forminterp/pkg/render"
	rendertemplate "github.com/goliatone/go-forminterp/pkg/render/template"
	"github.com/goliatone/go-forminterp/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPolicy sanitises label and button text with policy before it is
// escaped. Without a policy names are shown verbatim.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer writes a form as an HTML fragment: a `.form` container with one
// `.field` per rendered field.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, policy: cfg.policy}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, form *interp.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if form == nil {
		return nil, fmt.Errorf("html renderer: form is nil")
	}

	name := FormTemplate
	if options.Theme != nil {
		if override := strings.TrimSpace(options.Theme.Partials[FormPartial]); override != "" {
			name = override
		}
	}

	result, err := r.templates.RenderTemplate(name, r.view(form, options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type formView struct {
	Program    string      `json:"program"`
	Action     string      `json:"action"`
	Style      string      `json:"style"`
	Stylesheet string      `json:"stylesheet"`
	Notices    []string    `json:"notices"`
	Fields     []fieldView `json:"fields"`
}

type fieldView struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Inert bool   `json:"inert"`
}

func (r *Renderer) label(name string) string {
	if r.policy == nil {
		return name
	}
	return r.policy.Sanitize(name)
}

func (r *Renderer) view(form *interp.Form, options render.RenderOptions) formView {
	view := formView{
		Program: form.ProgramName(),
		Action:  options.Action,
		Notices: append([]string(nil), options.Notices...),
		Style:   render.CSSVarsStyle(options.Theme),
	}
	if options.Theme != nil && options.Theme.AssetURL != nil {
		view.Stylesheet = options.Theme.AssetURL("stylesheet")
	}

	fields := form.Fields()
	view.Fields = make([]fieldView, 0, len(fields))
	for _, field := range fields {
		input := field.Input()
		fv := fieldView{
			Kind: string(field.Type()),
			Name: field.Name(),
			Text: r.label(field.Name()),
			ID:   input.ID,
			Type: string(input.Type),
		}
		switch typed := field.(type) {
		case *interp.ButtonField:
			fv.Inert = typed.Inert()
		default:
			if field.Type() != program.FieldTypePassword {
				fv.Value = input.Value()
			}
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}
