// Package text renders a form as a styled, line-per-field terminal preview.
package text

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/render"
)

// Name is the registry key of the text renderer.
const Name = "text"

// Styles groups the lipgloss styles applied to each element.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Button lipgloss.Style
	Inert  lipgloss.Style
	Notice lipgloss.Style
}

// DefaultStyles returns bold labels, accented buttons and faint inert buttons.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Underline(true),
		Label:  lipgloss.NewStyle().Bold(true),
		Value:  lipgloss.NewStyle(),
		Button: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Inert:  lipgloss.NewStyle().Faint(true),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Option configures the renderer.
type Option func(*Renderer)

// WithStyles replaces the default styles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithTitle toggles the program name heading.
func WithTitle(enabled bool) Option {
	return func(r *Renderer) {
		r.title = enabled
	}
}

// Renderer produces a read-only preview of a form.
type Renderer struct {
	styles Styles
	title  bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{styles: DefaultStyles(), title: true}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, form *interp.Form, options render.RenderOptions) ([]byte, error) {
	if form == nil {
		return nil, errors.New("text renderer: form is nil")
	}

	var lines []string
	if r.title {
		lines = append(lines, r.styles.Title.Render(form.ProgramName()))
	}
	for _, notice := range options.Notices {
		lines = append(lines, r.styles.Notice.Render("! "+notice))
	}
	for _, field := range form.Fields() {
		lines = append(lines, r.line(field))
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func (r *Renderer) line(field interp.Field) string {
	if button, ok := field.(*interp.ButtonField); ok {
		text := "[ " + button.Name() + " ]"
		if button.Inert() {
			return r.styles.Inert.Render(text)
		}
		return r.styles.Button.Render(text)
	}

	input := field.Input()
	value := input.Value()
	if input.Masked() {
		value = strings.Repeat("*", len([]rune(value)))
	}
	return r.styles.Label.Render(field.Label().Text+":") + " " + r.styles.Value.Render(value)
}
