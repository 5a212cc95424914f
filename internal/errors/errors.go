// Package errors provides structured error types and exit codes for birb.
package errors

import (
	"fmt"
)

// Exit codes reported by the birb process.
const (
	ExitSuccess      = 0 // Success (including partial build failures outside strict mode)
	ExitRuntimeError = 1 // Runtime error (VCS unavailable, strict-mode build failure, etc.)
	ExitConfigError  = 2 // Configuration error (missing or invalid manifest, corrupt preferences)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindNotFound
	KindValidation
	KindPreferences
)

// BirbError is the base error type for birb.
type BirbError struct {
	Kind    ErrorKind
	Message string
	Target  string // Platform or push target if applicable
	Cause   error  // Underlying error
}

func (e *BirbError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s", e.Target, e.Message)
	}
	return e.Message
}

func (e *BirbError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *BirbError) ExitCode() int {
	switch e.Kind {
	case KindNotFound, KindValidation, KindPreferences:
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *BirbError {
	return &BirbError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *BirbError {
	return New(fmt.Sprintf(format, args...))
}

// NotFound creates a not found error.
func NotFound(what, name string) *BirbError {
	return &BirbError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// Validation creates a new validation error.
func Validation(message string) *BirbError {
	return &BirbError{
		Kind:    KindValidation,
		Message: message,
	}
}

// Validationf creates a new validation error with formatting.
func Validationf(format string, args ...interface{}) *BirbError {
	return Validation(fmt.Sprintf(format, args...))
}

// Preferences creates an error for an unreadable preferences document.
func Preferences(message string, cause error) *BirbError {
	return &BirbError{
		Kind:    KindPreferences,
		Message: message,
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *BirbError {
	return &BirbError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// WrapKind wraps an error with an explicit kind.
func WrapKind(kind ErrorKind, err error, message string) *BirbError {
	return &BirbError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if be, ok := err.(*BirbError); ok {
		return be.ExitCode()
	}
	return ExitRuntimeError
}
