package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrValidationFailed is matched by every *ValidationError via errors.Is.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports a malformed input that reached the core.
// Field names the offending parameter as the caller spelled it (e.g. "tags", "slug").
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets callers match any validation error with errors.Is(err, ErrValidationFailed).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
