package interp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/pkg/program"
)

const defaultProgramName = "program"

// Render interprets p into a fresh Form. controller may be nil, in which case
// buttons render but every click raises the missing-callback notice. A
// program without a fields sequence fails with ErrMalformedProgram.
func Render(p program.Program, controller *Controller, options ...Option) (*Form, error) {
	if p.Fields == nil {
		return nil, fmt.Errorf("interp: render: %w", ErrMalformedProgram)
	}

	cfg := newConfig(options)

	name := cfg.programName
	if name == "" {
		name = p.Name
	}
	if name == "" {
		name = defaultProgramName
	}

	form := &Form{
		program:    name,
		fields:     make([]Field, 0, len(p.Fields)),
		index:      make(map[string]Field, len(p.Fields)),
		controller: controller,
		notifier:   cfg.notifier,
		logger:     cfg.logger,
	}

	for i, desc := range p.Fields {
		field := form.interpret(desc, cfg)
		if field == nil {
			form.reportUnknown(i, desc)
			continue
		}
		form.add(field)
	}

	return form, nil
}

func (f *Form) interpret(desc program.FieldDescriptor, cfg config) Field {
	switch desc.Type {
	case program.FieldTypeString:
		field := &StringField{inputField: newInputField(desc.Name, InputText)}
		if cfg.defaultValues {
			field.SetValue(desc.DefaultValue)
		}
		return field
	case program.FieldTypePassword:
		field := &PasswordField{inputField: newInputField(desc.Name, InputPassword)}
		if cfg.defaultValues {
			field.SetValue(desc.DefaultValue)
		}
		return field
	case program.FieldTypeButton:
		return &ButtonField{
			input: &Input{
				ID:    ElementID(desc.Name),
				Name:  desc.Name,
				Type:  InputButton,
				value: desc.Name,
			},
			callback: desc.Callback,
			args:     append([]string(nil), desc.Args...),
			form:     f,
		}
	default:
		return nil
	}
}

func (f *Form) reportUnknown(index int, desc program.FieldDescriptor) {
	message := fmt.Sprintf("Error in program. Field type %q is not valid.", desc.Type)
	f.diagnostics = append(f.diagnostics, Diagnostic{
		Program: f.program,
		Index:   index,
		Field:   desc.Name,
		Type:    desc.Type,
		Message: message,
	})
	f.logger.Warn(message,
		zap.String("program", f.program),
		zap.Int("index", index),
		zap.String("field", desc.Name),
		zap.String("type", string(desc.Type)),
	)
}
