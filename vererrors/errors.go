package vererrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrVersionParse indicates a version string could not be parsed.
	ErrVersionParse = errors.New("version parse error")

	// ErrEmptyRegistry indicates a registry was built from no versions.
	ErrEmptyRegistry = errors.New("no versions declared")

	// ErrDuplicateVersion indicates the same version was declared more than once.
	ErrDuplicateVersion = errors.New("duplicate version")

	// ErrUnsortedVersions indicates versions were declared out of ascending order.
	ErrUnsortedVersions = errors.New("unsorted versions")

	// ErrActionVersionNotDeclared indicates a lifecycle action references a
	// version absent from the registry.
	ErrActionVersionNotDeclared = errors.New("action version not declared")

	// ErrConflictingActions indicates two lifecycle actions share a version.
	ErrConflictingActions = errors.New("conflicting actions")

	// ErrOutOfOrderActions indicates lifecycle actions are not chronologically sound.
	ErrOutOfOrderActions = errors.New("out of order actions")

	// ErrNamingConvention indicates the deprecated naming form is used or
	// missing incorrectly.
	ErrNamingConvention = errors.New("naming convention violation")

	// ErrMisplacedConversionHook indicates an upgrade or downgrade function
	// was supplied without an accompanying type change.
	ErrMisplacedConversionHook = errors.New("misplaced conversion hook")

	// ErrUnconvertibleTypeChange indicates a type change has neither a
	// supplied nor a built-in value conversion.
	ErrUnconvertibleTypeChange = errors.New("unconvertible type change")

	// ErrUnknownAPIVersion indicates an object declares a version outside the registry.
	ErrUnknownAPIVersion = errors.New("unknown apiVersion")

	// ErrWrongKind indicates an object declares a kind the service does not convert.
	ErrWrongKind = errors.New("wrong object kind")

	// ErrDeserialize indicates a payload does not match the expected shape
	// for its declared version.
	ErrDeserialize = errors.New("deserialize failure")

	// ErrSerialize indicates a converted payload could not be serialized.
	ErrSerialize = errors.New("serialize failure")

	// ErrNoDowngradePath indicates a downgrade hop has no supplied inverse converter.
	ErrNoDowngradePath = errors.New("no downgrade path")

	// ErrNoUpgradePath indicates an upgrade hop was declared unsupported and
	// no hand-written converter was registered for it.
	ErrNoUpgradePath = errors.New("no upgrade path")
)

// RegistryError represents a failure to build a version registry.
type RegistryError struct {
	// Version is the offending version string, if the error concerns a
	// specific declaration
	Version string
	// Position is the zero-based position of the offending declaration in
	// the caller-supplied list (-1 if not applicable)
	Position int
	// Message describes the registry violation
	Message string
	// Cause is the underlying sentinel, one of ErrEmptyRegistry,
	// ErrDuplicateVersion, ErrUnsortedVersions or ErrVersionParse
	Cause error
}

// Error returns a human-readable error message.
func (e *RegistryError) Error() string {
	msg := "registry error"
	if e.Version != "" {
		msg += " for version " + e.Version
	}
	if e.Position >= 0 {
		msg += fmt.Sprintf(" (position %d)", e.Position)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// LifecycleError represents an invalid lifecycle action configuration on an item.
type LifecycleError struct {
	// Item is the name of the item carrying the invalid actions
	Item string
	// Version is the version referenced by the offending action, if any
	Version string
	// Message describes the violation
	Message string
	// Cause is the underlying sentinel, one of ErrActionVersionNotDeclared,
	// ErrConflictingActions, ErrOutOfOrderActions, ErrNamingConvention or
	// ErrMisplacedConversionHook
	Cause error
}

// Error returns a human-readable error message.
func (e *LifecycleError) Error() string {
	msg := "lifecycle error"
	if e.Item != "" {
		msg += " for item " + e.Item
	}
	if e.Version != "" {
		msg += " at version " + e.Version
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LifecycleError) Unwrap() error {
	return e.Cause
}

// GenerateError represents a failure to generate a conversion step between
// two adjacent versions.
type GenerateError struct {
	// Item is the item whose status could not be converted
	Item string
	// FromVersion is the source version of the step
	FromVersion string
	// ToVersion is the target version of the step
	ToVersion string
	// FromType and ToType describe the type change, when relevant
	FromType string
	ToType   string
	// Message describes the generation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *GenerateError) Error() string {
	msg := "generate error"
	if e.FromVersion != "" && e.ToVersion != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.FromVersion, e.ToVersion)
	}
	if e.Item != "" {
		msg += " for item " + e.Item
	}
	if e.FromType != "" && e.ToType != "" {
		msg += fmt.Sprintf(" (type %s -> %s)", e.FromType, e.ToType)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// ConversionError represents a runtime failure to convert a single object.
// Every failure is attributed to a specific object and conversion step.
type ConversionError struct {
	// APIVersion is the version the object declared
	APIVersion string
	// DesiredVersion is the version requested by the caller
	DesiredVersion string
	// ObjectIndex is the zero-based position of the object in the batch
	// (-1 if not applicable)
	ObjectIndex int
	// StepFrom and StepTo identify the conversion step that failed, if any
	StepFrom string
	StepTo   string
	// Message describes the conversion failure
	Message string
	// Cause is the underlying sentinel or error
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.ObjectIndex >= 0 {
		msg += fmt.Sprintf(" for object %d", e.ObjectIndex)
	}
	if e.APIVersion != "" && e.DesiredVersion != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.APIVersion, e.DesiredVersion)
	}
	if e.StepFrom != "" && e.StepTo != "" {
		msg += fmt.Sprintf(" at step %s -> %s", e.StepFrom, e.StepTo)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}
