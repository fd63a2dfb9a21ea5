package vererrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestRegistryError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &RegistryError{
			Version:  "v1beta1",
			Position: 2,
			Message:  "declared twice",
			Cause:    ErrDuplicateVersion,
		}

		msg := err.Error()
		if msg != "registry error for version v1beta1 (position 2): declared twice: duplicate version" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &RegistryError{Position: -1}
		if err.Error() != "registry error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("errors.Is matches sentinel via cause", func(t *testing.T) {
		err := &RegistryError{Position: -1, Cause: ErrEmptyRegistry}
		if !errors.Is(err, ErrEmptyRegistry) {
			t.Error("expected errors.Is to match ErrEmptyRegistry")
		}
		if errors.Is(err, ErrDuplicateVersion) {
			t.Error("did not expect errors.Is to match ErrDuplicateVersion")
		}
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		inner := &RegistryError{Version: "v1", Position: 0, Cause: ErrUnsortedVersions}
		wrapped := fmt.Errorf("building registry: %w", inner)

		var regErr *RegistryError
		if !errors.As(wrapped, &regErr) {
			t.Fatal("expected errors.As to find RegistryError")
		}
		if regErr.Version != "v1" {
			t.Errorf("unexpected version: %s", regErr.Version)
		}
	})
}

func TestLifecycleError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &LifecycleError{
			Item:    "deprecatedBar",
			Version: "v1beta1",
			Message: "cannot be marked as added and deprecated in the same version",
			Cause:   ErrConflictingActions,
		}

		want := "lifecycle error for item deprecatedBar at version v1beta1: " +
			"cannot be marked as added and deprecated in the same version: conflicting actions"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("sentinel matching", func(t *testing.T) {
		tests := []struct {
			name     string
			cause    error
			sentinel error
		}{
			{"undeclared version", ErrActionVersionNotDeclared, ErrActionVersionNotDeclared},
			{"conflicting actions", ErrConflictingActions, ErrConflictingActions},
			{"out of order", ErrOutOfOrderActions, ErrOutOfOrderActions},
			{"naming convention", ErrNamingConvention, ErrNamingConvention},
			{"misplaced hook", ErrMisplacedConversionHook, ErrMisplacedConversionHook},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := &LifecycleError{Item: "bar", Cause: tt.cause}
				if !errors.Is(err, tt.sentinel) {
					t.Errorf("expected errors.Is to match %v", tt.sentinel)
				}
			})
		}
	})
}

func TestGenerateError(t *testing.T) {
	t.Run("Error message includes step and types", func(t *testing.T) {
		err := &GenerateError{
			Item:        "bar",
			FromVersion: "v1alpha1",
			ToVersion:   "v1beta1",
			FromType:    "uint16",
			ToType:      "chan int",
			Message:     "no built-in conversion",
			Cause:       ErrUnconvertibleTypeChange,
		}

		want := "generate error (v1alpha1 -> v1beta1) for item bar (type uint16 -> chan int): " +
			"no built-in conversion: unconvertible type change"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		err := &GenerateError{Cause: ErrUnconvertibleTypeChange}
		if !errors.Is(err, ErrUnconvertibleTypeChange) {
			t.Error("expected errors.Is to match ErrUnconvertibleTypeChange")
		}
	})
}

func TestConversionError(t *testing.T) {
	t.Run("Error message attributes object and step", func(t *testing.T) {
		err := &ConversionError{
			APIVersion:     "v1alpha1",
			DesiredVersion: "v1",
			ObjectIndex:    3,
			StepFrom:       "v1beta1",
			StepTo:         "v1",
			Message:        "field bar is not a number",
			Cause:          ErrDeserialize,
		}

		want := "conversion error for object 3 (v1alpha1 -> v1) at step v1beta1 -> v1: " +
			"field bar is not a number: deserialize failure"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ConversionError{ObjectIndex: -1}
		if err.Error() != "conversion error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("runtime sentinels", func(t *testing.T) {
		tests := []struct {
			name     string
			sentinel error
		}{
			{"unknown apiVersion", ErrUnknownAPIVersion},
			{"wrong kind", ErrWrongKind},
			{"deserialize", ErrDeserialize},
			{"serialize", ErrSerialize},
			{"no downgrade path", ErrNoDowngradePath},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := &ConversionError{ObjectIndex: -1, Cause: tt.sentinel}
				if !errors.Is(err, tt.sentinel) {
					t.Errorf("expected errors.Is to match %v", tt.sentinel)
				}
			})
		}
	})
}
