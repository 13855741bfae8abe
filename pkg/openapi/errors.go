package openapi

import "errors"

var (
	// ErrEmptyDocument is returned for empty payloads.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrNoOperations is returned when a document declares no operations.
	ErrNoOperations = errors.New("openapi: document does not contain any operations")
	// ErrOperationNotFound is returned when Import cannot find the operation.
	ErrOperationNotFound = errors.New("openapi: operation not found")
)
