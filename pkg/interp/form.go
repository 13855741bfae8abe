package interp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/pkg/program"
)

// Diagnostic records a descriptor the renderer skipped.
type Diagnostic struct {
	Program string
	Index   int
	Field   string
	Type    program.FieldType
	Message string
}

// Form is the container produced by Render: one Field per recognised
// descriptor, in program order. A Form is not safe for concurrent use.
type Form struct {
	program     string
	fields      []Field
	index       map[string]Field
	diagnostics []Diagnostic
	controller  *Controller
	notifier    Notifier
	logger      *zap.Logger
}

// ProgramName returns the name diagnostics use for the source program.
func (f *Form) ProgramName() string {
	return f.program
}

// Len returns the number of rendered fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// Fields returns the rendered fields in order.
func (f *Form) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// Field resolves a rendered field by name. When a program repeats a name the
// first rendered field wins.
func (f *Form) Field(name string) (Field, bool) {
	field, ok := f.index[name]
	return field, ok
}

// Buttons returns the rendered buttons in order.
func (f *Form) Buttons() []*ButtonField {
	var out []*ButtonField
	for _, field := range f.fields {
		if button, ok := field.(*ButtonField); ok {
			out = append(out, button)
		}
	}
	return out
}

// Diagnostics returns the descriptors skipped while rendering.
func (f *Form) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), f.diagnostics...)
}

// SetNotifier redirects notices raised by later clicks, e.g. to a collector
// scoped to one request.
func (f *Form) SetNotifier(n Notifier) {
	if n != nil {
		f.notifier = n
	}
}

// Value returns the live value of the named field.
func (f *Form) Value(name string) (string, bool) {
	field, ok := f.index[name]
	if !ok {
		return "", false
	}
	return field.Input().Value(), true
}

// SetValue writes the live value of a string or password field.
func (f *Form) SetValue(name, value string) error {
	field, ok := f.index[name]
	if !ok {
		return fmt.Errorf("interp: set %q: %w", name, ErrFieldNotFound)
	}
	switch typed := field.(type) {
	case *StringField:
		typed.SetValue(value)
	case *PasswordField:
		typed.SetValue(value)
	default:
		return fmt.Errorf("interp: set %q: %w", name, ErrNotEditable)
	}
	return nil
}

// Values returns the live values of the editable fields keyed by name.
func (f *Form) Values() map[string]string {
	out := make(map[string]string)
	for _, field := range f.fields {
		if field.Type() == program.FieldTypeButton {
			continue
		}
		if _, seen := out[field.Name()]; seen {
			continue
		}
		out[field.Name()] = field.Input().Value()
	}
	return out
}

// Click activates the named button. Inert buttons do nothing. The callback's
// error, if any, is returned; a missing callback raises a notice instead.
func (f *Form) Click(ctx context.Context, name string) error {
	field, ok := f.index[name]
	if !ok {
		return fmt.Errorf("interp: click %q: %w", name, ErrFieldNotFound)
	}
	button, ok := field.(*ButtonField)
	if !ok {
		return fmt.Errorf("interp: click %q: %w", name, ErrNotButton)
	}
	return button.Click(ctx)
}

func (f *Form) dispatch(ctx context.Context, button *ButtonField) error {
	values := f.collect(button.args)

	if fn, ok := f.controller.Lookup(button.callback); ok {
		f.logger.Debug("dispatch callback",
			zap.String("program", f.program),
			zap.String("button", button.Name()),
			zap.String("callback", button.callback),
			zap.Int("args", len(values)),
		)
		return fn(values...)
	}

	payload, err := marshalArgs(values)
	if err != nil {
		return fmt.Errorf("interp: encode arguments: %w", err)
	}
	message := "Target Function \"" + button.callback + "\" not found in controller object. Arguments to be used will be: " + payload
	return f.notifier.Notify(ctx, message)
}

func (f *Form) collect(args []string) []string {
	values := make([]string, 0, len(args))
	for _, name := range args {
		field, ok := f.index[name]
		if !ok {
			continue
		}
		values = append(values, field.Input().Value())
	}
	return values
}

func marshalArgs(values []string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (f *Form) add(field Field) {
	f.fields = append(f.fields, field)
	if _, exists := f.index[field.Name()]; !exists {
		f.index[field.Name()] = field
	}
}
