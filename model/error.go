// Package model provides the data model definitions for emocal.
package model

import "errors"

// Sentinel errors for missing resources.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// ValidationError represents an input validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError is a helper constructing a ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
