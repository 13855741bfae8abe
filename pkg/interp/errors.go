package interp

import (
	"errors"

	"github.com/goliatone/go-forminterp/pkg/program"
)

var (
	// ErrMalformedProgram aliases program.ErrMalformedProgram so callers can
	// check render failures without importing the program package.
	ErrMalformedProgram = program.ErrMalformedProgram
	// ErrFieldNotFound is returned when a form has no field with the name.
	ErrFieldNotFound = errors.New("interp: field not found")
	// ErrNotButton is returned when a click targets a non-button field.
	ErrNotButton = errors.New("interp: field is not a button")
	// ErrNotEditable is returned when a value is written to a button.
	ErrNotEditable = errors.New("interp: field does not accept values")
)
