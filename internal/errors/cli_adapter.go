package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dse, ok := As(err); ok {
		return exitCodeFromCategory(dse.Category)
	}

	return 1
}

func exitCodeFromCategory(category ErrorCategory) int {
	switch category {
	case CategoryValidation:
		return 2 // Invalid configuration
	case CategoryConfig:
		return 7 // Configuration could not be read
	case CategoryGit:
		return 8 // External system error
	case CategoryEmit, CategoryFileSystem:
		return 11 // Output error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	dse, ok := As(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return err.Error()
	}

	switch dse.Category {
	case CategoryConfig, CategoryValidation:
		if dse.Cause != nil {
			return fmt.Sprintf("%s:\n%v", dse.Message, dse.Cause)
		}
		return dse.Message
	default:
		return fmt.Sprintf("%s: %s", dse.Category, dse.Message)
	}
}

// HandleError reports an error and returns the exit code the process should use.
func (a *CLIErrorAdapter) HandleError(err error) int {
	if err == nil {
		return 0
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintln(a.out, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// shouldLog determines if an error should be logged in addition to being printed.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if dse, ok := As(err); ok {
		return dse.Category == CategoryInternal || dse.Category == CategoryRuntime
	}

	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	dse, ok := As(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}

	attrs := []slog.Attr{slog.String("category", string(dse.Category))}
	for k, v := range dse.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	if dse.Cause != nil {
		attrs = append(attrs, slog.String("error", dse.Cause.Error()))
	}
	a.logger.LogAttrs(context.Background(), slogLevel(dse.Severity), dse.Message, attrs...)
}

func slogLevel(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
