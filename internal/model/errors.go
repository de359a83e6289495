package model

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports input rejected by a builder.
// It is returned synchronously by the offending call and the builder
// state is left unchanged.
type ValidationError struct {
	// Field names the rejected input, e.g. "priority" or "@type".
	Field string

	// Value is the rejected value. It may be nil when the field was absent.
	Value any

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
