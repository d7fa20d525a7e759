package model

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a failure of a pool run.
type ErrorCode string

const (
	ErrConfig ErrorCode = "CONFIG_ERROR"
	ErrSchema ErrorCode = "SCHEMA_ERROR"
	ErrIO     ErrorCode = "IO_ERROR"
)

// PoolError is a fatal error raised while building or writing a pool.
type PoolError struct {
	Code ErrorCode
	Op   string // what was being done, e.g. "load profile"
	Path string // file involved, optional
	Err  error
}

func (e *PoolError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Op)
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *PoolError) Unwrap() error {
	return e.Err
}

// Is matches another *PoolError carrying the same code, so callers can test
// errors.Is(err, &PoolError{Code: ErrSchema}).
func (e *PoolError) Is(target error) bool {
	t, ok := target.(*PoolError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}

// RowError describes a malformed row in a delimited input file.
type RowError struct {
	Path    string
	Line    int
	Column  string
	Message string
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s:%d: column %s: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}

// FieldError describes a validation error on a specific configuration field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every invalid configuration field.
type ValidationError struct {
	Message string
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = d.Field + ": " + d.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// NewValidationError creates a ValidationError with details.
func NewValidationError(msg string, details ...FieldError) *ValidationError {
	return &ValidationError{Message: msg, Details: details}
}
