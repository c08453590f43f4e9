// Package errors provides a lightweight structured error type (DocsiteError)
// for category-based classification of configuration, resolution and emit
// failures, and for exit-code selection in the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a docsite error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Collaborators outside the configuration itself
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryGit        ErrorCategory = "git"
	CategoryEmit       ErrorCategory = "emit"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DocsiteError is a structured error with category, severity and context
type DocsiteError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocsiteError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocsiteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocsiteError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocsiteError) WithContext(key string, value any) *DocsiteError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocsiteError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocsiteError {
	return &DocsiteError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocsiteError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocsiteError {
	return &DocsiteError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost DocsiteError in err's chain.
func As(err error) (*DocsiteError, bool) {
	var dse *DocsiteError
	if errors.As(err, &dse) {
		return dse, true
	}
	return nil, false
}

// IsCategory checks if an error (or anything it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dse, ok := As(err); ok {
		return dse.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocsiteError
func GetCategory(err error) ErrorCategory {
	if dse, ok := As(err); ok {
		return dse.Category
	}
	return CategoryInternal
}
