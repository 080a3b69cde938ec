package errors

import "fmt"

// WrapParseError wraps a read or syntax failure of a Go source file
func WrapParseError(file string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, "failed to parse source", cause).
		WithLocation(SourceLocation{File: file}).
		WithSuggestion("Make sure the dependency source compiles with `go vet`")
}

// WrapResolutionError wraps a failure to locate a dependency module
func WrapResolutionError(depName, workspace string, cause error) *BaseError {
	message := fmt.Sprintf("failed to resolve dependency '%s'", depName)
	return Wrap(ResolutionErrorCode, message, cause).
		WithContext("dependency", depName).
		WithContext("workspace", workspace).
		WithSuggestions(
			fmt.Sprintf("Add the module to %s/go.mod and run `go mod download`", workspace),
			"Workspace members are never matched; the dependency must come from the module graph",
		)
}

// SourceNotFound reports that none of the candidate source files exist
func SourceNotFound(component string, candidates []string) *BaseError {
	message := fmt.Sprintf("no source file for component '%s'", component)
	err := New(SourceNotFoundErrorCode, message).
		WithContext("component", component).
		WithContext("candidates", candidates)
	for _, c := range candidates {
		err.WithSuggestion(fmt.Sprintf("Expected %s", c))
	}
	return err
}

// WrapGenerateError wraps an assembly failure for a component
func WrapGenerateError(typeName string, cause error) *BaseError {
	message := fmt.Sprintf("failed to generate wrapper for %s", typeName)
	return Wrap(GenerationErrorCode, message, cause).
		WithContext("type", typeName)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName).
		WithContext("operation", operation)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// DirectiveError creates an error for a malformed //bindgen: directive
func DirectiveError(loc SourceLocation, message string) *BaseError {
	return New(DirectiveErrorCode, message).
		WithLocation(loc).
		WithSuggestion("Directives look like //bindgen:layer retry or //bindgen:service s3 -prefix=opendal")
}

// WrapDirectiveError wraps a directive grammar failure
func WrapDirectiveError(loc SourceLocation, cause error) *BaseError {
	return DirectiveError(loc, "invalid directive").WithCause(cause)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// WrapHookError wraps a failure of the post-generation stub command
func WrapHookError(command string, cause error) *BaseError {
	message := fmt.Sprintf("stub command '%s' failed", command)
	return Wrap(HookErrorCode, message, cause).
		WithContext("command", command)
}
