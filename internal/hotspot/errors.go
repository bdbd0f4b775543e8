package hotspot

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every ValidationError via errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// ValidationError reports a caller mistake in one of the engine parameters.
type ValidationError struct {
	Op    string
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Op, e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(op, field, msg string) error {
	return &ValidationError{Op: op, Field: field, Msg: msg}
}
