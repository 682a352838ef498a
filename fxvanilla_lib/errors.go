package fxvanilla

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a pricing parameter violates its domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNumericSingularity is returned when the closed form cannot produce a
	// finite value for otherwise valid inputs.
	ErrNumericSingularity = errors.New("numeric singularity")
)

// InputError describes which field of a request was rejected.
type InputError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field string, value interface{}, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
