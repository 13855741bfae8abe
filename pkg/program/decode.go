package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type programFile struct {
	Name   string             `json:"name" yaml:"name"`
	Fields *[]FieldDescriptor `json:"fields" yaml:"fields"`
}

// Parse decodes a JSON program, falling back to YAML. Payloads that decode
// but carry no `fields` sequence fail with ErrMalformedProgram.
func Parse(data []byte) (Program, error) {
	return parse(data, "payload")
}

func parse(data []byte, source string) (Program, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Program{}, fmt.Errorf("program: parse %s: %w", source, ErrEmptyPayload)
	}

	var doc programFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = programFile{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return Program{}, fmt.Errorf("program: parse %s: invalid JSON or YAML: %w", source, ErrMalformedProgram)
		}
	}

	if doc.Fields == nil {
		return Program{}, fmt.Errorf("program: parse %s: missing fields: %w", source, ErrMalformedProgram)
	}

	fields := *doc.Fields
	if fields == nil {
		fields = []FieldDescriptor{}
	}
	return Program{
		Name:   strings.TrimSpace(doc.Name),
		Fields: fields,
	}, nil
}

// Encode renders the program as indented JSON, the format the page bootstrap
// seeds its program text box with.
func Encode(p Program) ([]byte, error) {
	if p.Fields == nil {
		p.Fields = []FieldDescriptor{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("program: encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeYAML renders the program as YAML.
func EncodeYAML(p Program) ([]byte, error) {
	if p.Fields == nil {
		p.Fields = []FieldDescriptor{}
	}
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("program: encode yaml: %w", err)
	}
	return out, nil
}
