package signal

import (
	"errors"
	"fmt"
)

var (
	// ErrArityMismatch is returned when an argument list has the wrong length.
	ErrArityMismatch = errors.New("argument count mismatch")

	// ErrTypeMismatch is returned when an argument type cannot be assigned to
	// the declared parameter type.
	ErrTypeMismatch = errors.New("argument type mismatch")

	// ErrHandlerPanic is matched by HandlerPanic through errors.Is.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError wraps an error returned by, or produced while calling, a handler.
type HandlerError struct {
	Key Key
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// HandlerPanic records a recovered handler panic.
type HandlerPanic struct {
	Key   Key
	Value any
	Stack string
}

// Error implements the error interface.
func (e *HandlerPanic) Error() string {
	return fmt.Sprintf("handler %s panicked: %v", e.Key, e.Value)
}

// Is allows errors.Is to match HandlerPanic with ErrHandlerPanic.
func (e *HandlerPanic) Is(target error) bool {
	return target == ErrHandlerPanic
}
