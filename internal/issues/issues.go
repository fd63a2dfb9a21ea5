// Package issues provides a unified issue type for lifecycle validation and
// converter generation problems.
package issues

import (
	"fmt"

	"github.com/crdtools/crdtools/internal/severity"
)

// Issue represents a single problem found during lifecycle validation or
// converter generation.
type Issue struct {
	// Item is the name of the item the issue concerns (empty for
	// container-level issues)
	Item string
	// Version is the version the issue is attributed to (empty when the
	// issue is not tied to a specific version)
	Version string
	// Action names the lifecycle action the issue concerns: "added",
	// "changed" or "deprecated" (optional)
	Action string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Err is the underlying typed error, when one exists
	Err error
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	subject := i.Item
	if subject == "" {
		subject = "schema"
	}
	if i.Action != "" {
		subject += "." + i.Action
	}
	if i.Version != "" {
		subject += fmt.Sprintf(" (%s)", i.Version)
	}

	return fmt.Sprintf("%s %s: %s", symbol, subject, i.Message)
}

// CountBySeverity tallies issues per severity level.
func CountBySeverity(list []Issue) (errors, warnings, infos, criticals int) {
	for _, issue := range list {
		switch issue.Severity {
		case severity.SeverityError:
			errors++
		case severity.SeverityWarning:
			warnings++
		case severity.SeverityInfo:
			infos++
		case severity.SeverityCritical:
			criticals++
		}
	}
	return errors, warnings, infos, criticals
}
