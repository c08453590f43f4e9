package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocsiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigDecode(path string, cause error) *DocsiteError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration could not be decoded").
		WithContext("path", path)
}

func ConfigExists(path string) *DocsiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file already exists (use --force to overwrite)").
		WithContext("path", path)
}

// ValidationFailed wraps the joined list of structural problems found in a configuration.
func ValidationFailed(cause error) *DocsiteError {
	return Wrap(cause, CategoryValidation, SeverityFatal, "configuration is invalid")
}

func MissingDocuments(count int) *DocsiteError {
	return New(CategoryValidation, SeverityFatal, "sidebar references missing documents").
		WithContext("missing", count)
}

// Collaborator errors

func FileSystemError(operation, path string, cause error) *DocsiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func GitHistoryError(path string, cause error) *DocsiteError {
	return Wrap(cause, CategoryGit, SeverityWarning, "git history unavailable").
		WithContext("path", path)
}

func EmitFailed(format string, cause error) *DocsiteError {
	return Wrap(cause, CategoryEmit, SeverityFatal, "configuration could not be emitted").
		WithContext("format", format)
}

// Runtime errors

func WatchError(message string, cause error) *DocsiteError {
	return Wrap(cause, CategoryRuntime, SeverityFatal, message)
}

func InternalError(message string, cause error) *DocsiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
