package models

import (
	"errors"
	"fmt"
)

// ValidationError marks a missing or malformed required field. Always a
// 400-equivalent and never retried automatically.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NewValidationError returns a ValidationError for the given field.
func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")
