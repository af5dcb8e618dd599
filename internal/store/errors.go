package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the record does not exist or is owned by another user.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a category with the same (user, name, type) exists.
	ErrConflict = errors.New("category already exists")
	// ErrInvalidReference means a referenced category is not owned by the caller.
	ErrInvalidReference = errors.New("invalid category")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a list of field-level input errors.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors if it is one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
