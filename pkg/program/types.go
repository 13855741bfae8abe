package program

// FieldType selects the rendering strategy for a descriptor.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypePassword FieldType = "password"
	FieldTypeButton   FieldType = "button"
)

// Known reports whether the interpreter has a rendering strategy for t.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeString, FieldTypePassword, FieldTypeButton:
		return true
	default:
		return false
	}
}

// FieldDescriptor describes one field of a program. Name doubles as the
// lookup key of the rendered input within a single render pass. Callback and
// Args only apply to buttons.
type FieldDescriptor struct {
	Name         string    `json:"name" yaml:"name"`
	Type         FieldType `json:"type" yaml:"type"`
	Callback     string    `json:"callback,omitempty" yaml:"callback,omitempty"`
	Args         []string  `json:"args,omitempty" yaml:"args,omitempty"`
	AllowEmpty   *bool     `json:"allowEmpty,omitempty" yaml:"allowEmpty,omitempty"`
	DefaultValue string    `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// HasCallback reports whether clicking the field should dispatch.
func (d FieldDescriptor) HasCallback() bool {
	return d.Type == FieldTypeButton && d.Callback != ""
}

// Program is an ordered sequence of field descriptors. Order determines the
// rendering order. Name is optional and only used to identify the program in
// diagnostics.
type Program struct {
	Name   string            `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
}

// Len returns the number of descriptors, regardless of their type.
func (p Program) Len() int {
	return len(p.Fields)
}

// Clone returns a deep copy so callers can hand programs to concurrent
// renders without sharing the args slices.
func (p Program) Clone() Program {
	out := Program{Name: p.Name}
	if p.Fields == nil {
		return out
	}
	out.Fields = make([]FieldDescriptor, len(p.Fields))
	for i, field := range p.Fields {
		field.Args = append([]string(nil), field.Args...)
		if field.AllowEmpty != nil {
			allow := *field.AllowEmpty
			field.AllowEmpty = &allow
		}
		out.Fields[i] = field
	}
	return out
}

// Bool is a small helper for building descriptors in Go code.
func Bool(v bool) *bool {
	return &v
}
