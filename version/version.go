package version

import (
	"fmt"
	"regexp"

	"github.com/crdtools/crdtools/vererrors"
)

// versionPattern matches Kubernetes resource versions in the
// v<MAJOR>(alpha|beta)<NUMBER> format. The full identifier must follow the
// DNS label rules: lowercase alphanumeric, at most 63 characters.
var versionPattern = regexp.MustCompile(`^v(?P<major>\d+)(?P<level>[a-z][a-z0-9]*)?$`)

// levelPattern splits a level suffix into its identifier and number,
// e.g. "alpha1" -> ("alpha", 1).
var levelPattern = regexp.MustCompile(`^(?P<identifier>[a-z]+)(?P<number>\d+)$`)

// LevelKind identifies the maturity level of a version. The zero value is
// LevelStable, so the zero Version renders as "v0".
type LevelKind int

const (
	// LevelStable is a version without a maturity suffix, e.g. "v1".
	LevelStable LevelKind = iota
	// LevelAlpha is an alpha-level version, e.g. the "alpha1" in "v1alpha1".
	LevelAlpha
	// LevelBeta is a beta-level version, e.g. the "beta1" in "v1beta1".
	LevelBeta
)

// String returns the identifier used in version strings. LevelStable has no
// textual form and returns the empty string.
func (k LevelKind) String() string {
	switch k {
	case LevelAlpha:
		return "alpha"
	case LevelBeta:
		return "beta"
	default:
		return ""
	}
}

// rank orders maturity levels: alpha < beta < stable.
func (k LevelKind) rank() int {
	switch k {
	case LevelAlpha:
		return 0
	case LevelBeta:
		return 1
	default:
		return 2
	}
}

// Version is a Kubernetes resource version with the v<MAJOR>(alpha|beta)<NUMBER>
// format, for example "v1", "v2beta1" or "v1alpha2".
//
// Versions are strictly ordered: majors compare first, then maturity levels
// (alpha before beta before stable), then the level number, so
// v1alpha1 < v1alpha2 < v1beta1 < v1 < v2.
//
// Version is a comparable value type and may be used as a map key.
//
// See https://kubernetes.io/docs/reference/using-api/#api-versioning for the
// conventions this format follows.
type Version struct {
	// Major is the major version, the number directly after the leading "v".
	Major uint64
	// Level is the maturity level of the version.
	Level LevelKind
	// LevelNumber is the number after the level identifier. Zero for
	// LevelStable versions.
	LevelNumber uint64
}

// MustParse parses a version string and panics on failure. Intended for
// tests and package-level declarations with known-good inputs.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("version: MustParse(%q): %v", s, err))
	}
	return v
}

// Parse parses a version string such as "v1", "v1alpha2" or "v2beta1".
func Parse(s string) (Version, error) {
	if len(s) == 0 || len(s) > 63 {
		return Version{}, &vererrors.RegistryError{
			Version:  s,
			Position: -1,
			Message:  "input is empty or exceeds 63 characters",
			Cause:    vererrors.ErrVersionParse,
		}
	}

	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &vererrors.RegistryError{
			Version:  s,
			Position: -1,
			Message:  "expected format v<MAJOR>(alpha|beta)<NUMBER>",
			Cause:    vererrors.ErrVersionParse,
		}
	}

	var v Version
	// The pattern guarantees digits only, so the scan fails only on
	// overflow, which is reported like any other malformed input.
	if _, err := fmt.Sscanf(m[versionPattern.SubexpIndex("major")], "%d", &v.Major); err != nil {
		return Version{}, &vererrors.RegistryError{
			Version:  s,
			Position: -1,
			Message:  "failed to parse major version",
			Cause:    vererrors.ErrVersionParse,
		}
	}

	if levelStr := m[versionPattern.SubexpIndex("level")]; levelStr != "" {
		kind, number, err := parseLevel(levelStr)
		if err != nil {
			return Version{}, &vererrors.RegistryError{
				Version:  s,
				Position: -1,
				Message:  err.Error(),
				Cause:    vererrors.ErrVersionParse,
			}
		}
		v.Level = kind
		v.LevelNumber = number
	}

	return v, nil
}

func parseLevel(s string) (LevelKind, uint64, error) {
	m := levelPattern.FindStringSubmatch(s)
	if m == nil {
		return LevelStable, 0, fmt.Errorf("invalid level format %q, expected alpha<NUMBER>|beta<NUMBER>", s)
	}

	var kind LevelKind
	switch identifier := m[levelPattern.SubexpIndex("identifier")]; identifier {
	case "alpha":
		kind = LevelAlpha
	case "beta":
		kind = LevelBeta
	default:
		return LevelStable, 0, fmt.Errorf("unknown level identifier %q, expected alpha|beta", identifier)
	}

	var number uint64
	if _, err := fmt.Sscanf(m[levelPattern.SubexpIndex("number")], "%d", &number); err != nil {
		return LevelStable, 0, fmt.Errorf("failed to parse level number: %w", err)
	}

	return kind, number, nil
}

// String returns the version in its textual form, e.g. "v1alpha2".
func (v Version) String() string {
	if v.Level == LevelStable {
		return fmt.Sprintf("v%d", v.Major)
	}
	return fmt.Sprintf("v%d%s%d", v.Major, v.Level, v.LevelNumber)
}

// Compare returns -1, 0 or 1 depending on whether v orders before, equal to,
// or after other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major < other.Major:
		return -1
	case v.Major > other.Major:
		return 1
	}

	switch {
	case v.Level.rank() < other.Level.rank():
		return -1
	case v.Level.rank() > other.Level.rank():
		return 1
	}

	switch {
	case v.LevelNumber < other.LevelNumber:
		return -1
	case v.LevelNumber > other.LevelNumber:
		return 1
	default:
		return 0
	}
}

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool {
	return v == other
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// MarshalText implements encoding.TextMarshaler so versions serialize as
// their string form in JSON and YAML documents.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
