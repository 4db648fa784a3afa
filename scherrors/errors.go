package scherrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrGeneration indicates a code generation failure.
	ErrGeneration = errors.New("generation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse a document.
type ParseError struct {
	// Path is the file path or source description
	Path string
	// Message describes what went wrong
	Message string
	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error in %s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// Is reports whether target matches this error category.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsExternal is true when the reference points outside the document
	IsExternal bool
	// Message provides additional detail about the failure
	Message string
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	if e.IsExternal {
		return fmt.Sprintf("external reference not resolvable: %s", e.Ref)
	}
	if e.Message != "" {
		return fmt.Sprintf("reference not found: %s (%s)", e.Ref, e.Message)
	}
	return fmt.Sprintf("reference not found: %s", e.Ref)
}

// Unwrap returns the sentinel for errors.Is checks.
func (e *ReferenceError) Unwrap() error {
	return ErrReference
}

// GenerationError represents a failure during code generation.
type GenerationError struct {
	// Target is the emission target (e.g., "typescript", "go")
	Target string
	// Message describes what went wrong
	Message string
	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed for target %s: %s: %v", e.Target, e.Message, e.Err)
	}
	return fmt.Sprintf("generation failed for target %s: %s", e.Target, e.Message)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrGeneration
}

// Is reports whether target matches this error category.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// ConfigError represents an invalid configuration or option value.
type ConfigError struct {
	// Option is the offending option name
	Option string
	// Message describes why the value is invalid
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Message)
}

// Unwrap returns the sentinel for errors.Is checks.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}
