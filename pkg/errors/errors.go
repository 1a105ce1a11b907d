package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure in the runner configuration,
// with optional line metadata from the decoder.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
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

// ConfigurationError captures invalid runner setup: unknown module names,
// invalid flag combinations, or a config file that fails validation. Raised
// before any module executes.
type ConfigurationError struct {
	Field   string
	Message string
	Err     error
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(field, message string, err error) error {
	return &ConfigurationError{Field: field, Message: message, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PlanLoadError indicates the plan document is missing, unreadable, or not
// valid JSON. Fatal for the whole run: no test can execute without a
// snapshot.
type PlanLoadError struct {
	Path    string
	Message string
	Err     error
}

// NewPlanLoadError constructs a PlanLoadError.
func NewPlanLoadError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &PlanLoadError{Path: path, Message: message, Err: err}
}

func (e *PlanLoadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("plan load error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *PlanLoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PathError indicates malformed path syntax handed to the plan store. It is
// distinct from a well-formed path that is simply absent from the snapshot.
type PathError struct {
	Path    string
	Message string
}

// NewPathError constructs a PathError for the given path expression.
func NewPathError(path, message string) error {
	return &PathError{Path: path, Message: message}
}

func (e *PathError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("path error: %q: %s", e.Path, e.Message)
}

// ExecutionError represents a runtime fault while running a test module, as
// opposed to an assertion failure recorded in its results.
type ExecutionError struct {
	Module string
	Err    error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(module string, err error) error {
	return &ExecutionError{Module: module, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Module != "" {
		return fmt.Sprintf("execution error in module %s: %v", e.Module, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
