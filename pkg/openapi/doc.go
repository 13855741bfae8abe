// Package openapi builds form programs from OpenAPI operations: each string
// property of the JSON request body becomes an input and the operation itself
// becomes a button dispatching to a callback named after its operationId.
package openapi
