package schema

import "github.com/crdtools/crdtools/version"

// Type is the declared type of an item, e.g. "uint16", "string" or "[]string".
// The engine treats types as opaque names except when generating built-in
// value conversions between numeric types (see the convert package).
type Type string

// DefaultFunc supplies a value for an item when converting forward from a
// version where it did not yet exist. A nil DefaultFunc means the type's
// zero value.
type DefaultFunc func() any

// ConvertFunc transforms an item's value across a type change.
type ConvertFunc func(any) (any, error)

// Added records that an item first exists in a particular version.
// An item without an Added action is part of the record in every version.
type Added struct {
	// Since is the first version the item exists in.
	Since version.Version
	// Default supplies the item's value when upgrading from a version that
	// precedes Since. Nil means the type's zero value.
	Default DefaultFunc
}

// Changed records a rename and/or type change effective starting at Since.
// An item may carry any number of Changed actions, each at a distinct version.
type Changed struct {
	// Since is the version the change takes effect in.
	Since version.Version
	// FromName is the item's name before the change. Empty means the name
	// did not change.
	FromName string
	// FromType is the item's type before the change. Empty means the type
	// did not change.
	FromType Type
	// UpgradeFunc converts values from FromType to the post-change type.
	// May only be supplied together with FromType.
	UpgradeFunc ConvertFunc
	// DowngradeFunc converts values from the post-change type back to
	// FromType. May only be supplied together with FromType.
	DowngradeFunc ConvertFunc
}

// Deprecated records that an item is deprecated from Since onward.
// An item may be deprecated at most once.
type Deprecated struct {
	// Since is the first version the item is deprecated in.
	Since version.Version
	// Note is an optional human-readable deprecation note.
	Note string
}

// Item is a named field or enum variant of the logical record type. Name and
// Type describe the item's latest declared shape; the lifecycle actions
// describe how it evolved across the declared versions.
//
// An item deprecated at some version must declare its name in the deprecated
// form ("deprecatedBar" or "deprecated_bar"); the pre-deprecation name is
// derived by stripping the prefix.
type Item struct {
	// Name is the item's name in the latest declared version.
	Name string
	// Type is the item's type in the latest declared version.
	Type Type
	// Added is the optional addition action. At most one.
	Added *Added
	// Changes are the rename/retype actions, in any declared order.
	Changes []Changed
	// Deprecated is the optional deprecation action. At most one.
	Deprecated *Deprecated
}
