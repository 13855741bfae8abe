// Package tui runs a form as an interactive terminal session: each input is
// prompted in order, then the user picks buttons to click until done.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/program"
	"github.com/goliatone/go-forminterp/pkg/render"
)

// Name is the registry key of the TUI renderer.
const Name = "tui"

// ErrEmptyValue is reported through the validator for required inputs left
// blank.
var ErrEmptyValue = errors.New("tui: value is required")

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	required     map[string]bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Notifier prints notices through the prompt driver with the theme's info
// prefix. Controllers that report to the user should share it with the form.
func (r *Renderer) Notifier() interp.Notifier {
	return interp.NotifierFunc(func(ctx context.Context, message string) error {
		if r.driver == nil {
			return errors.New("tui: prompt driver is nil")
		}
		return r.driver.Info(ctx, r.theme.InfoPrefix+message)
	})
}

// Summary is the outcome of a session.
type Summary struct {
	Program string            `json:"program"`
	Values  map[string]string `json:"values"`
	Clicks  []string          `json:"clicks"`
}

// Render drives the session and returns the summary. Notices raised by clicks
// are printed through the driver.
func (r *Renderer) Render(ctx context.Context, form *interp.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if form == nil {
		return nil, errors.New("tui: form is nil")
	}

	for _, notice := range opts.Notices {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+notice); err != nil {
			return nil, err
		}
	}

	form.SetNotifier(r.Notifier())

	if err := r.promptInputs(ctx, form); err != nil {
		return nil, err
	}
	clicks, err := r.clickLoop(ctx, form)
	if err != nil {
		return nil, err
	}
	return r.serialize(summarize(form, clicks))
}

func (r *Renderer) promptInputs(ctx context.Context, form *interp.Form) error {
	for _, field := range form.Fields() {
		if field.Type() == program.FieldTypeButton {
			continue
		}
		cfg := InputConfig{Message: field.Label().Text}
		if r.required[field.Name()] {
			cfg.Validator = func(value string) error {
				if strings.TrimSpace(value) == "" {
					return ErrEmptyValue
				}
				return nil
			}
		}

		var (
			value string
			err   error
		)
		if field.Input().Masked() {
			value, err = r.driver.Password(ctx, cfg)
		} else {
			cfg.Default = field.Input().Value()
			value, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return fmt.Errorf("tui: prompt %q: %w", field.Name(), err)
		}
		if err := setField(field, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) clickLoop(ctx context.Context, form *interp.Form) ([]string, error) {
	buttons := form.Buttons()
	if len(buttons) == 0 {
		return nil, nil
	}

	options := make([]string, 0, len(buttons)+1)
	for _, button := range buttons {
		options = append(options, button.Name())
	}
	options = append(options, DoneOption)

	var clicks []string
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      form.ProgramName(),
			Options:      options,
			DefaultIndex: 0,
		})
		if err != nil {
			return nil, fmt.Errorf("tui: select button: %w", err)
		}
		if idx < 0 || idx >= len(options) {
			return nil, ErrInvalidSelection
		}
		if idx == len(buttons) {
			return clicks, nil
		}

		button := buttons[idx]
		clicks = append(clicks, button.Name())
		if err := button.Click(ctx); err != nil {
			if infoErr := r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error()); infoErr != nil {
				return nil, infoErr
			}
		}
	}
}

func setField(field interp.Field, value string) error {
	switch typed := field.(type) {
	case *interp.StringField:
		typed.SetValue(value)
	case *interp.PasswordField:
		typed.SetValue(value)
	default:
		return fmt.Errorf("tui: set %q: %w", field.Name(), interp.ErrNotEditable)
	}
	return nil
}

func summarize(form *interp.Form, clicks []string) Summary {
	summary := Summary{
		Program: form.ProgramName(),
		Values:  form.Values(),
		Clicks:  clicks,
	}
	if summary.Clicks == nil {
		summary.Clicks = []string{}
	}
	for _, field := range form.Fields() {
		if field.Input().Masked() {
			if _, ok := summary.Values[field.Name()]; ok {
				summary.Values[field.Name()] = Redacted
			}
		}
	}
	return summary
}

func (r *Renderer) serialize(summary Summary) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(summary)), nil
	}
	return json.MarshalIndent(summary, "", "  ")
}

func prettyPrint(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "program: %s\n", summary.Program)
	for _, key := range sortedKeys(summary.Values) {
		fmt.Fprintf(&b, "%s: %s\n", key, summary.Values[key])
	}
	if len(summary.Clicks) > 0 {
		fmt.Fprintf(&b, "clicks: %s\n", strings.Join(summary.Clicks, ", "))
	}
	return b.String()
}
