package version

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/crdtools/crdtools/vererrors"
)

// Definition declares a single schema version, optionally marked deprecated.
type Definition struct {
	// Version is the declared version identifier.
	Version Version
	// Deprecated indicates that the version is deprecated and clients should
	// migrate away from it.
	Deprecated bool
	// Note is an optional human-readable deprecation note. Ignored unless
	// Deprecated is set.
	Note string
}

// Registry is the validated, ordered list of declared schema versions. It is
// immutable after construction and serves as the single time axis referenced
// by validation, changeset projection, shape materialization and conversion.
type Registry struct {
	defs []Definition
	// index maps version strings to positions in defs for O(1) lookups.
	index map[string]int
}

// RegisterOption configures Register.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	allowUnsorted bool
}

// WithAllowUnsorted permits declaring versions out of ascending order.
// The registry sorts them stably and reports diagnostics against the
// original declaration positions.
func WithAllowUnsorted() RegisterOption {
	return func(cfg *registerConfig) {
		cfg.allowUnsorted = true
	}
}

// Register validates the declared versions and builds an immutable Registry.
//
// It rejects empty input, duplicate version identifiers, and versions
// declared in descending order unless [WithAllowUnsorted] is supplied, in
// which case the input is sorted stably. All violations found in a single
// call are accumulated and returned together via errors.Join.
func Register(defs []Definition, opts ...RegisterOption) (*Registry, error) {
	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(defs) == 0 {
		return nil, &vererrors.RegistryError{
			Position: -1,
			Message:  "at least one version must be declared",
			Cause:    vererrors.ErrEmptyRegistry,
		}
	}

	var errs []error

	// Duplicates are checked against the original declaration order so the
	// reported position matches the caller's input.
	seen := make(map[Version]int, len(defs))
	for i, def := range defs {
		if first, ok := seen[def.Version]; ok {
			errs = append(errs, &vererrors.RegistryError{
				Version:  def.Version.String(),
				Position: i,
				Message:  fmt.Sprintf("already declared at position %d", first),
				Cause:    vererrors.ErrDuplicateVersion,
			})
			continue
		}
		seen[def.Version] = i
	}

	sorted := sort.SliceIsSorted(defs, func(i, j int) bool {
		return defs[i].Version.Less(defs[j].Version)
	})
	if !sorted && !cfg.allowUnsorted {
		errs = append(errs, &vererrors.RegistryError{
			Position: -1,
			Message: fmt.Sprintf("versions must be declared in ascending order, got [%s]",
				joinVersions(defs)),
			Cause: vererrors.ErrUnsortedVersions,
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	ordered := make([]Definition, len(defs))
	copy(ordered, defs)
	if !sorted {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Version.Less(ordered[j].Version)
		})
	}

	index := make(map[string]int, len(ordered))
	for i, def := range ordered {
		index[def.Version.String()] = i
	}

	return &Registry{defs: ordered, index: index}, nil
}

// MustRegister is like Register but panics on failure. Intended for tests
// and package-level declarations with known-good inputs.
func MustRegister(defs []Definition, opts ...RegisterOption) *Registry {
	r, err := Register(defs, opts...)
	if err != nil {
		panic(fmt.Sprintf("version: MustRegister: %v", err))
	}
	return r
}

// Len returns the number of declared versions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// At returns the definition at position i in ascending order.
func (r *Registry) At(i int) Definition {
	return r.defs[i]
}

// Index returns the position of v in ascending order, or -1 if v is not
// declared.
func (r *Registry) Index(v Version) int {
	if i, ok := r.index[v.String()]; ok {
		return i
	}
	return -1
}

// Contains reports whether v is a declared version.
func (r *Registry) Contains(v Version) bool {
	return r.Index(v) >= 0
}

// Earliest returns the lowest declared version.
func (r *Registry) Earliest() Definition {
	return r.defs[0]
}

// Latest returns the highest declared version.
func (r *Registry) Latest() Definition {
	return r.defs[len(r.defs)-1]
}

// Definitions returns a copy of the ordered definitions.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Versions returns the ordered version values.
func (r *Registry) Versions() []Version {
	out := make([]Version, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.Version
	}
	return out
}

// Strings returns the ordered version identifiers.
func (r *Registry) Strings() []string {
	out := make([]string, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.Version.String()
	}
	return out
}

func joinVersions(defs []Definition) string {
	parts := make([]string, len(defs))
	for i, def := range defs {
		parts[i] = def.Version.String()
	}
	return strings.Join(parts, ", ")
}
