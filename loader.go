package forminterp

import (
	"context"

	"github.com/goliatone/go-forminterp/pkg/program"
)

// NewLoader constructs a program loader.
func NewLoader(options ...program.LoaderOption) *program.Loader {
	return program.NewLoader(options...)
}

// LoadProgram reads and decodes the program at source with a default loader.
func LoadProgram(ctx context.Context, source program.Source) (Program, error) {
	return program.NewLoader().Load(ctx, source)
}
