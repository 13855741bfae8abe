package program

import "errors"

var (
	// ErrMalformedProgram signals a payload without an iterable `fields`
	// sequence. Rendering such a program is a caller error.
	ErrMalformedProgram = errors.New("program: malformed program")
	// ErrEmptyPayload is returned when a source resolves to no data.
	ErrEmptyPayload = errors.New("program: payload is empty")
)
