package interfaces

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a malformed argument passed to a public operation.
// It is raised before any lookup or I/O is attempted.
type InvalidInputError struct {
	// Op names the operation that rejected the argument (e.g. "i18n.translate").
	Op string
	// Field names the offending argument.
	Field string
	// Value carries the offending value for diagnostics.
	Value any
	// Reason describes the expected shape.
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e == nil {
		return ErrInvalidInput.Error()
	}
	msg := fmt.Sprintf("%s: invalid %s", e.Op, e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (got %T %v)", e.Value, e.Value)
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(op, field string, value any, reason string) *InvalidInputError {
	return &InvalidInputError{Op: op, Field: field, Value: value, Reason: reason}
}
