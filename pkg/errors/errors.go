// Package errors defines the typed error taxonomy shared by the config
// loader and the step graph: parse failures, validation failures, step
// failures, and cleanup failures. Each type wraps its cause so callers can
// use errors.As/errors.Is across layers.
package errors

import (
	"fmt"
)

// ParseError represents a JSON parsing failure while loading a config file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
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

// ValidationError captures workspace/instance spec validation issues.
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

// StepError represents a failure running a step's run phase. It is the Go
// analogue of the one returned by a failed provisioning step: it names the
// step and wraps the underlying cause.
type StepError struct {
	StepName string
	Err      error
}

// NewStepError constructs a StepError for the named step.
func NewStepError(stepName string, err error) error {
	return &StepError{StepName: stepName, Err: err}
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("error running %s: %v", e.StepName, e.Err)
}

// Unwrap exposes the root error.
func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CleanupError represents a failure during a step's cleanup phase. Cleanup
// failures are never propagated as the operation's result—they are logged
// and execution continues—but they still get a typed shape so logging
// call sites stay consistent with step failures.
type CleanupError struct {
	StepName string
	Err      error
}

// NewCleanupError constructs a CleanupError for the named step.
func NewCleanupError(stepName string, err error) error {
	return &CleanupError{StepName: stepName, Err: err}
}

func (e *CleanupError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("error cleaning up %s: %v", e.StepName, e.Err)
}

// Unwrap exposes the root error.
func (e *CleanupError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
