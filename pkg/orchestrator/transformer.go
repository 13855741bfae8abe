package orchestrator

import (
	"context"

	"github.com/goliatone/go-forminterp/pkg/program"
)

// Transformer mutates a program after loading and before interpretation.
// Implementations can rename fields, swap callbacks, or inject buttons.
type Transformer interface {
	Transform(ctx context.Context, prog *program.Program) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, prog *program.Program) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, prog *program.Program) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, prog)
}

// DropUnknownTypes removes descriptors with unrecognised types so the
// interpreter never reports them.
var DropUnknownTypes = TransformerFunc(func(_ context.Context, prog *program.Program) error {
	if prog == nil || prog.Fields == nil {
		return nil
	}
	kept := prog.Fields[:0]
	for _, field := range prog.Fields {
		if field.Type.Known() {
			kept = append(kept, field)
		}
	}
	prog.Fields = kept
	return nil
})
