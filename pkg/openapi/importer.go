package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-forminterp/pkg/program"
)

// Operation is the subset of OpenAPI operation metadata the importer exposes.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

type operationRef struct {
	Operation
	op *openapi3.Operation
}

// Operations lists the document's operations sorted by id. Operations without
// an operationId are keyed `<method>:<path>`.
func Operations(ctx context.Context, data []byte, options ...Option) ([]Operation, error) {
	refs, err := load(ctx, data, newConfig(options))
	if err != nil {
		return nil, err
	}
	out := make([]Operation, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Operation)
	}
	return out, nil
}

// Import builds a program for operationID.
func Import(ctx context.Context, data []byte, operationID string, options ...Option) (program.Program, error) {
	cfg := newConfig(options)
	refs, err := load(ctx, data, cfg)
	if err != nil {
		return program.Program{}, err
	}
	for _, ref := range refs {
		if ref.ID == operationID {
			return buildProgram(ref, cfg), nil
		}
	}
	return program.Program{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func load(ctx context.Context, data []byte, cfg config) ([]operationRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, ErrNoOperations
	}

	var refs []operationRef
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		refs = collect(refs, "GET", path, item.Get)
		refs = collect(refs, "PUT", path, item.Put)
		refs = collect(refs, "POST", path, item.Post)
		refs = collect(refs, "DELETE", path, item.Delete)
		refs = collect(refs, "PATCH", path, item.Patch)
	}
	if len(refs) == 0 {
		return nil, ErrNoOperations
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func collect(refs []operationRef, method, path string, op *openapi3.Operation) []operationRef {
	if op == nil {
		return refs
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	return append(refs, operationRef{
		Operation: Operation{ID: id, Method: method, Path: path, Summary: op.Summary},
		op:        op,
	})
}

type property struct {
	name     string
	schema   *openapi3.Schema
	required bool
}

func buildProgram(ref operationRef, cfg config) program.Program {
	schema := requestSchema(ref.op.RequestBody, cfg.mediaTypes)
	props := stringProperties(schema)

	fields := make([]program.FieldDescriptor, 0, len(props)+1)
	args := make([]string, 0, len(props))
	for _, prop := range props {
		field := program.FieldDescriptor{
			Name:       prop.name,
			Type:       program.FieldTypeString,
			AllowEmpty: program.Bool(!prop.required),
		}
		if prop.schema.Format == "password" || prop.schema.WriteOnly {
			field.Type = program.FieldTypePassword
		}
		if def, ok := prop.schema.Default.(string); ok {
			field.DefaultValue = def
		}
		fields = append(fields, field)
		args = append(args, prop.name)
	}

	label := strings.TrimSpace(ref.Summary)
	if label == "" {
		label = ref.ID
	}
	fields = append(fields, program.FieldDescriptor{
		Name:     label,
		Type:     program.FieldTypeButton,
		Callback: ref.ID,
		Args:     args,
	})
	return program.Program{Name: ref.ID, Fields: fields}
}

func requestSchema(body *openapi3.RequestBodyRef, mediaTypes []string) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// stringProperties returns the string-typed properties, required ones first,
// each group sorted by name.
func stringProperties(schema *openapi3.Schema) []property {
	if schema == nil {
		return nil
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var out []property
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		if ref.Value.Type == nil || !ref.Value.Type.Is(openapi3.TypeString) {
			continue
		}
		out = append(out, property{name: name, schema: ref.Value, required: required[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].required != out[j].required {
			return out[i].required
		}
		return out[i].name < out[j].name
	})
	return out
}
