package services

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable wraps any adapter failure. Readers treat it as
	// "empty, with a warning"; it is never fatal.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
)

// ValidationError names the rejected field. errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStorageUnavailable, op, key, err)
}
