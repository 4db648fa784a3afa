// Package issues provides a unified issue type for problems found during
// schema synthesis and code generation.
package issues

import (
	"fmt"

	"github.com/GGROM1/schemantic-sub000/internal/severity"
)

// Issue codes classify the recoverable problems the engine reports.
const (
	// CodeUnresolvedReference marks an internal $ref that does not resolve.
	// Fatal for the dependent type, non-fatal for the run.
	CodeUnresolvedReference = "UNRESOLVED_REFERENCE"
	// CodeAmbiguousComposition marks an allOf with more than one bare
	// reference member. First-reference-wins policy is applied.
	CodeAmbiguousComposition = "AMBIGUOUS_COMPOSITION"
	// CodeAnonymousSchema marks a schema that received a synthetic name.
	CodeAnonymousSchema = "ANONYMOUS_SCHEMA"
	// CodeUnsupportedShape marks a schema shape that lowered to unknown.
	CodeUnsupportedShape = "UNSUPPORTED_SHAPE"
)

// Issue represents a single problem found during synthesis or generation.
type Issue struct {
	// Code is the machine-readable issue classification
	Code string
	// Path is the document path to the problematic node
	// (e.g., "components.schemas.Pet" or "paths./pets.get")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Value is the problematic value (optional)
	Value any
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Code, i.Message)
	}
	return fmt.Sprintf("[%s] %s at %s: %s", i.Severity, i.Code, i.Path, i.Message)
}

// Error allows an Issue to be used where an error is expected.
func (i Issue) Error() string {
	return i.String()
}
