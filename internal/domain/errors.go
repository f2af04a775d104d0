package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks an entity that cannot be constructed from the supplied values.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a reference to something absent from the entity.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes the field that blocked construction of an entity.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
