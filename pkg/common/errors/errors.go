// Package errors defines the error values shared across the taskpool library.
package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the taskpool library

var (
	// ErrConflictingDrainFlags indicates a Drain call that asked to keep
	// accepting new tasks while also abandoning pending tasks or
	// terminating the pool
	ErrConflictingDrainFlags = errors.New("conflicting drain flags")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDuplicateJob indicates that a job ID is already scheduled
	ErrDuplicateJob = errors.New("duplicate job")

	// ErrUnknownJob indicates that no job with the given ID is scheduled
	ErrUnknownJob = errors.New("unknown job")
)

// IsUsage returns true if the error reports a misuse of the API by the
// caller, as opposed to a runtime condition
func IsUsage(err error) bool {
	return errors.Is(err, ErrConflictingDrainFlags) ||
		errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrDuplicateJob) ||
		errors.Is(err, ErrUnknownJob)
}

// ValidationError describes a configuration value that failed validation.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes ValidationError match ErrInvalidConfiguration with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError returns true if the error is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
