// Package naming provides shared name transformation utilities.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeprecatedPrefix is the distinguished name prefix carried by deprecated
// items from their deprecation version onward.
const DeprecatedPrefix = "deprecated"

// titleCaser capitalizes the first letter of a word.
// Use golang.org/x/text/cases for proper title casing (strings.Title is deprecated).
var titleCaser = cases.Title(language.English, cases.NoLower)

// HasDeprecatedPrefix reports whether name carries the deprecated prefix in
// either its camelCase ("deprecatedBar") or snake_case ("deprecated_bar") form.
func HasDeprecatedPrefix(name string) bool {
	if strings.HasPrefix(name, DeprecatedPrefix+"_") {
		return len(name) > len(DeprecatedPrefix)+1
	}
	if !strings.HasPrefix(name, DeprecatedPrefix) || len(name) == len(DeprecatedPrefix) {
		return false
	}
	// camelCase form requires an uppercase letter directly after the prefix,
	// so "deprecations" does not count as deprecated.
	r := []rune(name[len(DeprecatedPrefix):])
	return unicode.IsUpper(r[0])
}

// StripDeprecatedPrefix returns the pre-deprecation form of name: the prefix
// removed and the original casing restored. Names without the prefix are
// returned unchanged.
func StripDeprecatedPrefix(name string) string {
	if !HasDeprecatedPrefix(name) {
		return name
	}
	rest := name[len(DeprecatedPrefix):]
	if strings.HasPrefix(rest, "_") {
		return rest[1:]
	}
	runes := []rune(rest)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ApplyDeprecatedPrefix returns the deprecated form of name. Snake_case names
// receive a "deprecated_" prefix, all others the camelCase "deprecated" prefix.
func ApplyDeprecatedPrefix(name string) string {
	if HasDeprecatedPrefix(name) {
		return name
	}
	if strings.Contains(name, "_") {
		return DeprecatedPrefix + "_" + name
	}
	return DeprecatedPrefix + titleCaser.String(name)
}

// ToExported converts a field or item name to an exported Go identifier.
// Separators (underscore, hyphen, dot) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "apiVersion" -> "ApiVersion"
func ToExported(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToUnexported converts a name to an unexported Go identifier.
// Like ToExported but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
func ToUnexported(s string) string {
	exported := ToExported(s)
	if exported == "" {
		return ""
	}
	runes := []rune(exported)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
