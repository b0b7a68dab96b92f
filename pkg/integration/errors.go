package integration

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	err string
}

func (e *ValidationError) Error() string {
	return e.err
}

func NewValidationError(err string) *ValidationError {
	return &ValidationError{err: err}
}

func NewValidationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{err: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var base *ValidationError
	return errors.As(err, &base)
}
