// Package severity provides severity level constants and utilities for
// issues reported by the schema, convert and schemafile packages.
//
// All severity levels are re-exported by each public package that uses them:
//   - SeverityInfo: Informational messages about choices made
//   - SeverityWarning: Recommendations that do not invalidate the schema
//   - SeverityError: Invariant violations that make the schema invalid
//   - SeverityCritical: Problems that make conversion impossible (data loss)
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found during lifecycle
// validation, changeset projection or converter generation.
type Severity int

const (
	// SeverityError indicates an invariant violation that makes the
	// versioned schema invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a recommendation that does not prevent
	// processing but should be addressed.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo

	// SeverityCritical indicates problems that make conversion impossible,
	// such as a type change with no viable value conversion.
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
