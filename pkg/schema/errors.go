package schema

import (
	"errors"
	"fmt"
)

// Code classifies a validation failure.
type Code string

const (
	// CodeRequired marks a required field missing from the input.
	CodeRequired Code = "required"
	// CodeType marks a value that could not be coerced to the field's kind,
	// or is not the native type on a strict field.
	CodeType Code = "type"
	// CodeFormat marks an email, url, or pattern check failure.
	CodeFormat Code = "format"
	// CodeConstraint marks a bound, length, or enum-membership violation.
	CodeConstraint Code = "constraint"
	// CodeExtra marks an undeclared key under the forbid policy.
	CodeExtra Code = "extra"
	// CodeRule marks a cross-field rule failure, reported at path "__root__".
	CodeRule Code = "rule"
)

// RootPath is the field path used for cross-field rule failures.
const RootPath = "__root__"

// FieldError is a single validation failure at one field path.
// Nested paths are dot-joined, e.g. "address.zip_code".
type FieldError struct {
	Path    string `json:"path"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"` // the offending input value, nil when absent
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Path, e.Message, e.Value)
}

// Issues is the ordered list of failures from one validation attempt.
type Issues []*FieldError

func (e Issues) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e))
	for i, fe := range e {
		msg += fmt.Sprintf("  %d. %s\n", i+1, fe.Error())
	}
	return msg
}

// AsIssues returns the field errors carried by err, or nil if err is not a
// validation failure.
func AsIssues(err error) Issues {
	var issues Issues
	if errors.As(err, &issues) {
		return issues
	}
	return nil
}

// DefinitionError reports a malformed schema definition. It is returned by
// Compile and never produced at validation time.
type DefinitionError struct {
	Schema string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("schema definition: %s", e.Reason)
	}
	return fmt.Sprintf("schema %q: %s", e.Schema, e.Reason)
}

func definitionErr(schema, format string, args ...any) error {
	return &DefinitionError{Schema: schema, Reason: fmt.Sprintf(format, args...)}
}
