package schema

import (
	"errors"
	"fmt"
	"sync"

	"github.com/crdtools/crdtools/internal/issues"
	"github.com/crdtools/crdtools/internal/naming"
	"github.com/crdtools/crdtools/internal/severity"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// Severity indicates the severity level of a validation issue.
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about validation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates recommendations that do not invalidate the schema
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates invariant violations that make the schema invalid
	SeverityError = severity.SeverityError
	// SeverityCritical indicates problems that make conversion impossible
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single validation problem.
type Issue = issues.Issue

// ValidationResult contains all issues found while validating one or more
// items against a version registry. Validation accumulates every violated
// invariant rather than failing fast, so a single pass surfaces the full
// list of problems.
type ValidationResult struct {
	// Issues contains all validation issues found
	Issues []Issue
	// ErrorCount is the number of error-severity issues
	ErrorCount int
	// WarningCount is the number of warning-severity issues
	WarningCount int
	// Valid is true if no error-severity issues were found
	Valid bool
}

// Err returns all issue errors joined into a single error, or nil when the
// result is valid.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Err != nil {
			errs = append(errs, issue.Err)
		}
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) finish() *ValidationResult {
	errCount, warnCount, _, critCount := issues.CountBySeverity(r.Issues)
	r.ErrorCount = errCount + critCount
	r.WarningCount = warnCount
	r.Valid = r.ErrorCount == 0
	return r
}

// ValidateItem checks a single item's lifecycle actions against the registry.
//
// The validated invariants are:
//   - Added, Changed and Deprecated must not share a version.
//   - Added must precede Deprecated; every Changed lies strictly between them.
//   - Every action's version must be declared in the registry.
//   - A deprecated item uses the deprecated name form; others must not.
//   - Upgrade/downgrade functions require an accompanying type change.
//
// Validation is independent of other items; no cross-item state exists.
func ValidateItem(item Item, reg *version.Registry) *ValidationResult {
	result := &ValidationResult{}

	result.Issues = append(result.Issues, validateActionCombinations(item)...)
	result.Issues = append(result.Issues, validateActionOrder(item)...)
	result.Issues = append(result.Issues, validateActionVersions(item, reg)...)
	result.Issues = append(result.Issues, validateItemName(item)...)
	result.Issues = append(result.Issues, validateChangedActions(item)...)

	return result.finish()
}

// ValidateItems validates every item and aggregates the results. Items are
// validated concurrently; each item's changeset depends only on its own
// actions and the shared read-only registry, so no coordination is required
// beyond collecting results. Issue order follows item declaration order.
func ValidateItems(items []Item, reg *version.Registry) *ValidationResult {
	perItem := make([]*ValidationResult, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			perItem[i] = ValidateItem(item, reg)
		}()
	}
	wg.Wait()

	combined := &ValidationResult{}
	for _, r := range perItem {
		combined.Issues = append(combined.Issues, r.Issues...)
	}
	return combined.finish()
}

// validateActionCombinations checks that no two actions share a version:
// an item must be included for at least one version before being changed
// or deprecated.
func validateActionCombinations(item Item) []Issue {
	var found []Issue

	if item.Added != nil && item.Deprecated != nil && item.Added.Since.Equal(item.Deprecated.Since) {
		found = append(found, conflictIssue(item, "deprecated", item.Deprecated.Since,
			"cannot be marked as added and deprecated in the same version"))
	}

	seen := make(map[version.Version]bool, len(item.Changes))
	for _, change := range item.Changes {
		if item.Added != nil && item.Added.Since.Equal(change.Since) {
			found = append(found, conflictIssue(item, "changed", change.Since,
				"cannot be marked as added and changed in the same version"))
		}
		if item.Deprecated != nil && item.Deprecated.Since.Equal(change.Since) {
			found = append(found, conflictIssue(item, "changed", change.Since,
				"cannot be marked as deprecated and changed in the same version"))
		}
		if seen[change.Since] {
			found = append(found, conflictIssue(item, "changed", change.Since,
				"two changed actions use the same version"))
		}
		seen[change.Since] = true
	}

	return found
}

func conflictIssue(item Item, action string, v version.Version, msg string) Issue {
	return Issue{
		Item:     item.Name,
		Action:   action,
		Version:  v.String(),
		Message:  msg,
		Severity: SeverityError,
		Err: &vererrors.LifecycleError{
			Item:    item.Name,
			Version: v.String(),
			Message: msg,
			Cause:   vererrors.ErrConflictingActions,
		},
	}
}

// validateActionOrder checks that actions use a chronologically sound chain
// of versions: added before deprecated, and every change strictly between
// the two.
func validateActionOrder(item Item) []Issue {
	var found []Issue

	if item.Added != nil && item.Deprecated != nil && item.Deprecated.Since.Less(item.Added.Since) {
		msg := fmt.Sprintf("cannot be marked as added in version %s while being marked as deprecated in the earlier version %s",
			item.Added.Since, item.Deprecated.Since)
		found = append(found, Issue{
			Item:     item.Name,
			Action:   "deprecated",
			Version:  item.Deprecated.Since.String(),
			Message:  msg,
			Severity: SeverityError,
			Err: &vererrors.LifecycleError{
				Item:    item.Name,
				Version: item.Deprecated.Since.String(),
				Message: msg,
				Cause:   vererrors.ErrOutOfOrderActions,
			},
		})
	}

	for _, change := range item.Changes {
		afterAdded := item.Added == nil || item.Added.Since.Less(change.Since)
		beforeDeprecated := item.Deprecated == nil || change.Since.Less(item.Deprecated.Since)
		if afterAdded && beforeDeprecated {
			continue
		}
		msg := "all changes must use versions higher than added and lower than deprecated"
		found = append(found, Issue{
			Item:     item.Name,
			Action:   "changed",
			Version:  change.Since.String(),
			Message:  msg,
			Severity: SeverityError,
			Err: &vererrors.LifecycleError{
				Item:    item.Name,
				Version: change.Since.String(),
				Message: msg,
				Cause:   vererrors.ErrOutOfOrderActions,
			},
		})
	}

	return found
}

// validateActionVersions checks that every action references a version
// declared in the registry.
func validateActionVersions(item Item, reg *version.Registry) []Issue {
	var found []Issue

	check := func(action string, v version.Version) {
		if reg.Contains(v) {
			return
		}
		msg := fmt.Sprintf("the %s action uses a version which is not declared", action)
		found = append(found, Issue{
			Item:     item.Name,
			Action:   action,
			Version:  v.String(),
			Message:  msg,
			Severity: SeverityError,
			Err: &vererrors.LifecycleError{
				Item:    item.Name,
				Version: v.String(),
				Message: msg,
				Cause:   vererrors.ErrActionVersionNotDeclared,
			},
		})
	}

	if item.Added != nil {
		check("added", item.Added.Since)
	}
	for _, change := range item.Changes {
		check("changed", change.Since)
	}
	if item.Deprecated != nil {
		check("deprecated", item.Deprecated.Since)
	}

	return found
}

// validateItemName checks the deprecated naming convention: items marked as
// deprecated must carry the deprecated prefix in their declared name, and
// items which are not must not.
func validateItemName(item Item) []Issue {
	hasPrefix := naming.HasDeprecatedPrefix(item.Name)

	var msg string
	switch {
	case item.Deprecated != nil && !hasPrefix:
		msg = fmt.Sprintf("marked as deprecated and thus must include the %q prefix", naming.DeprecatedPrefix)
	case item.Deprecated == nil && hasPrefix:
		msg = fmt.Sprintf("not marked as deprecated and thus must not include the %q prefix", naming.DeprecatedPrefix)
	default:
		return nil
	}

	return []Issue{{
		Item:     item.Name,
		Message:  msg,
		Severity: SeverityError,
		Err: &vererrors.LifecycleError{
			Item:    item.Name,
			Message: msg,
			Cause:   vererrors.ErrNamingConvention,
		},
	}}
}

// validateChangedActions checks the parameters of each changed action: the
// previous name must not carry the deprecated prefix, and conversion
// functions may only accompany a type change.
func validateChangedActions(item Item) []Issue {
	var found []Issue

	for _, change := range item.Changes {
		if change.FromName != "" && naming.HasDeprecatedPrefix(change.FromName) {
			msg := "the previous name must not start with the deprecated prefix"
			found = append(found, Issue{
				Item:     item.Name,
				Action:   "changed",
				Version:  change.Since.String(),
				Message:  msg,
				Severity: SeverityError,
				Err: &vererrors.LifecycleError{
					Item:    item.Name,
					Version: change.Since.String(),
					Message: msg,
					Cause:   vererrors.ErrNamingConvention,
				},
			})
		}

		if change.FromType == "" {
			if change.UpgradeFunc != nil {
				found = append(found, hookIssue(item, change, "upgrade"))
			}
			if change.DowngradeFunc != nil {
				found = append(found, hookIssue(item, change, "downgrade"))
			}
		}
	}

	return found
}

func hookIssue(item Item, change Changed, direction string) Issue {
	msg := fmt.Sprintf("the %s function must be used in combination with a type change", direction)
	return Issue{
		Item:     item.Name,
		Action:   "changed",
		Version:  change.Since.String(),
		Message:  msg,
		Severity: SeverityError,
		Err: &vererrors.LifecycleError{
			Item:    item.Name,
			Version: change.Since.String(),
			Message: msg,
			Cause:   vererrors.ErrMisplacedConversionHook,
		},
	}
}
