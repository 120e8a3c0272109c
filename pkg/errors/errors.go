package errors

import (
	"fmt"
)

// ParseError represents a form definition that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports an invalid form definition. It is never used for
// user input; rejected field values are plain messages in the form state.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FieldErrors is returned by non-interactive fills when the submitted values
// still carry validation messages.
type FieldErrors struct {
	Fields map[string][]string
}

// NewFieldErrors copies the supplied messages into a FieldErrors value.
func NewFieldErrors(fields map[string][]string) error {
	copied := make(map[string][]string, len(fields))
	for name, messages := range fields {
		copied[name] = append([]string(nil), messages...)
	}
	return &FieldErrors{Fields: copied}
}

func (e *FieldErrors) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Fields) == 1 {
		return "form has errors in 1 field"
	}
	return fmt.Sprintf("form has errors in %d fields", len(e.Fields))
}
