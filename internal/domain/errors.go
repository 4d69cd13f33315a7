package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrMissingReference   = errors.New("referenced record does not exist")
	ErrAlreadyExists      = errors.New("already exists")
	ErrPersistence        = errors.New("database error")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("forbidden")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrImageTooLarge      = errors.New("image exceeds maximum size")
)

// ValidationError carries per-field messages back to the form that
// submitted them. Cause is set when the failure came from a store
// constraint (for example a duplicate vendor name).
type ValidationError struct {
	Message string
	Fields  map[string][]string
	Cause   error
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message, Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) First(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], ", "))
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
