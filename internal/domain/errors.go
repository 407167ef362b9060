package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNetwork      = errors.New("network error")
	ErrParse        = errors.New("parse error")
	ErrValidation   = errors.New("validation error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NetworkError reports a failed remote call: timeout, connectivity failure,
// or an unexpected HTTP status (StatusCode is 0 for transport failures).
type NetworkError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// ParseError reports a response body that could not be decoded into the
// expected wire shape.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// SourceError records the outcome of one failed source in a lookup chain.
type SourceError struct {
	Source string
	Word   string
	Err    error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s(%q): %v", e.Source, e.Word, e.Err)
}

// ChainError is returned when every source in the chain failed. It unwraps to
// the last attempted source's error and always matches ErrNotFound.
type ChainError struct {
	Query    string
	Attempts []SourceError
}

func (e *ChainError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("lookup %q: no sources configured", e.Query)
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Error()
	}
	return fmt.Sprintf("lookup %q: %s", e.Query, strings.Join(parts, "; "))
}

// Last returns the error of the last attempted source, or nil.
func (e *ChainError) Last() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

func (e *ChainError) Unwrap() []error {
	if last := e.Last(); last != nil {
		return []error{ErrNotFound, last}
	}
	return []error{ErrNotFound}
}
