package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every InvalidInputError
var ErrInvalidInput = errors.New("invalid HTML input")

// ErrUnknownBackend is returned for a markup backend name that is not registered
var ErrUnknownBackend = errors.New("unknown markup backend")

// InvalidInputError reports an HTML argument that is not a string
type InvalidInputError struct {
	Got string // dynamic type of the rejected value
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: expected string, got %s", ErrInvalidInput, e.Got)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
