// Package scherrors provides structured error types for schemantic.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and structural issues
//   - ReferenceError: $ref resolution failures and external references
//   - GenerationError: code generation failures
//   - ConfigError: invalid configuration or input options
package scherrors
