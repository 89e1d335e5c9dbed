package serverutils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("the requested resource was not found")
	ErrMalformattedId = errors.New("malformatted id")
	ErrUnknownRoute   = errors.New("unknown endpoint")
	ErrInternal       = errors.New("something went wrong on our end, please try again later")
)

// FieldError is a single schema violation on one field of a model.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned by the persistence layer when a document
// does not satisfy its schema. The message mirrors the document store wording
// so clients see the same detail whichever store backs the service.
type ValidationError struct {
	Model  string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}

	return fmt.Sprintf("%s validation failed: %s", e.Model, strings.Join(parts, ", "))
}

// MissingFieldError is returned by ValidateRequest when a required request
// field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " missing"
}
