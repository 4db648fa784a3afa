// Package severity provides severity level constants for issues reported
// by the synth and generator packages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found during schema
// synthesis or code generation.
type Severity int

const (
	// SeverityError indicates a violation that makes the dependent type
	// unusable, such as an unresolved internal reference.
	SeverityError Severity = iota
	// SeverityWarning indicates degraded output, such as a schema shape
	// that lowered to unknown or an ambiguous composition.
	SeverityWarning
	// SeverityInfo indicates informational messages about synthesis
	// choices, such as a synthetic name assigned to an anonymous schema.
	SeverityInfo
	// SeverityCritical indicates the run cannot produce meaningful output.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
