package interp

import (
	"context"

	"github.com/goliatone/go-forminterp/pkg/program"
)

// IDPrefix namespaces the element ids of rendered inputs.
const IDPrefix = "_vm_"

// FieldClass is the class of every field container.
const FieldClass = "field"

// InputType mirrors the HTML input types the interpreter produces.
type InputType string

const (
	InputText     InputType = "text"
	InputPassword InputType = "password"
	InputButton   InputType = "button"
)

// ElementID returns the element id of the input keyed by name.
func ElementID(name string) string {
	return IDPrefix + name
}

// Label is the caption rendered before an input.
type Label struct {
	Text string
	For  string
}

// Input holds the live value of a rendered control. Values are read at click
// time, never captured at render time.
type Input struct {
	ID    string
	Name  string
	Type  InputType
	value string
}

// Value returns the current value.
func (i *Input) Value() string {
	if i == nil {
		return ""
	}
	return i.value
}

// Masked reports whether the value should be hidden from display.
func (i *Input) Masked() bool {
	return i != nil && i.Type == InputPassword
}

// Field is one rendered element of a Form: a field container holding an
// optional label and an optional input. The set of implementations is closed.
type Field interface {
	Name() string
	Type() program.FieldType
	Label() *Label
	Input() *Input
	isField()
}

type inputField struct {
	label *Label
	input *Input
}

func newInputField(name string, kind InputType) inputField {
	id := ElementID(name)
	return inputField{
		label: &Label{Text: name, For: id},
		input: &Input{ID: id, Name: name, Type: kind},
	}
}

func (f *inputField) Name() string  { return f.input.Name }
func (f *inputField) Label() *Label { return f.label }
func (f *inputField) Input() *Input { return f.input }
func (f *inputField) isField()      {}

// SetValue replaces the live value.
func (f *inputField) SetValue(value string) {
	f.input.value = value
}

// Value returns the live value.
func (f *inputField) Value() string {
	return f.input.value
}

// StringField is a labelled single-line text input.
type StringField struct {
	inputField
}

// Type reports program.FieldTypeString.
func (f *StringField) Type() program.FieldType { return program.FieldTypeString }

// PasswordField is a labelled masked text input.
type PasswordField struct {
	inputField
}

// Type reports program.FieldTypePassword.
func (f *PasswordField) Type() program.FieldType { return program.FieldTypePassword }

// ButtonField is an unlabelled clickable input whose visible text is its
// name. Buttons without a callback are inert.
type ButtonField struct {
	input    *Input
	callback string
	args     []string
	form     *Form
}

func (f *ButtonField) Name() string            { return f.input.Name }
func (f *ButtonField) Type() program.FieldType { return program.FieldTypeButton }
func (f *ButtonField) Label() *Label           { return nil }
func (f *ButtonField) Input() *Input           { return f.input }
func (f *ButtonField) isField()                {}

// Callback returns the controller entry the button dispatches to.
func (f *ButtonField) Callback() string { return f.callback }

// Args returns a copy of the declared argument field names.
func (f *ButtonField) Args() []string { return append([]string(nil), f.args...) }

// Inert reports whether clicking the button does nothing.
func (f *ButtonField) Inert() bool { return f.callback == "" }

// Click activates the button. See Form.Click.
func (f *ButtonField) Click(ctx context.Context) error {
	if f.Inert() {
		return nil
	}
	return f.form.dispatch(ctx, f)
}

var (
	_ Field = (*StringField)(nil)
	_ Field = (*PasswordField)(nil)
	_ Field = (*ButtonField)(nil)
)
