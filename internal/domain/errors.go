package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource conflict")

	// ErrDuplicateName is returned when another project already uses the
	// same name, compared case-insensitively.
	ErrDuplicateName = fmt.Errorf("%w: project name already exists", ErrConflict)
)

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
