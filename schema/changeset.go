package schema

import (
	"sort"

	"github.com/crdtools/crdtools/internal/naming"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// StatusKind identifies the variant of an ItemStatus.
type StatusKind int

const (
	// StatusAbsent indicates the version precedes the item's addition.
	StatusAbsent StatusKind = iota
	// StatusAddition indicates the first version the item exists in.
	StatusAddition
	// StatusNoChange indicates the item's shape is identical to the
	// previous version.
	StatusNoChange
	// StatusChange indicates the item's name and/or type differ from the
	// previous version.
	StatusChange
	// StatusDeprecation indicates the first version the item is marked
	// deprecated in.
	StatusDeprecation
)

// String returns the status kind name.
func (k StatusKind) String() string {
	switch k {
	case StatusAbsent:
		return "absent"
	case StatusAddition:
		return "addition"
	case StatusNoChange:
		return "no-change"
	case StatusChange:
		return "change"
	case StatusDeprecation:
		return "deprecation"
	default:
		return "unknown"
	}
}

// ItemStatus describes one item's concrete shape at one version and its
// relationship to the adjacent earlier version. Exactly one status exists
// per (item, version) pair; see Project.
type ItemStatus struct {
	// Kind selects the variant.
	Kind StatusKind

	// Name is the item's resolved name at this version. Empty for StatusAbsent.
	Name string
	// Type is the item's resolved type at this version. Empty for StatusAbsent.
	Type Type

	// Default supplies the value when upgrading into a StatusAddition.
	Default DefaultFunc

	// FromName and FromType describe the shape in the previous version for
	// StatusChange.
	FromName string
	FromType Type
	// UpgradeFunc and DowngradeFunc convert values across a StatusChange
	// type change.
	UpgradeFunc   ConvertFunc
	DowngradeFunc ConvertFunc

	// PreviousName is the pre-deprecation name for StatusDeprecation.
	PreviousName string
	// Note is the deprecation note, set at the StatusDeprecation version and
	// carried onto the NoChange entries that follow it.
	Note string

	// PreviouslyDeprecated is set on StatusNoChange entries that follow a
	// deprecation.
	PreviouslyDeprecated bool
}

// Deprecated reports whether the item is in its deprecated form at this status.
func (s ItemStatus) Deprecated() bool {
	return s.Kind == StatusDeprecation || (s.Kind == StatusNoChange && s.PreviouslyDeprecated)
}

// Changeset is the per-version status map derived from one item's lifecycle
// actions. It is computed once by Project and immutable thereafter, and
// contains exactly one ItemStatus for every version in the registry.
type Changeset struct {
	item     Item
	statuses map[version.Version]ItemStatus
}

// Item returns the item this changeset was projected from.
func (c *Changeset) Item() Item {
	return c.item
}

// At returns the item's status at v. The second return value is false when v
// is not a declared version.
func (c *Changeset) At(v version.Version) (ItemStatus, bool) {
	s, ok := c.statuses[v]
	return s, ok
}

// Project converts an item's lifecycle actions into the per-version status
// map describing the item's concrete shape at every declared version.
//
// The walk runs from the latest version to the earliest, since the item's
// declared name and type always describe its latest shape:
//
//  1. The Deprecated action emits a Deprecation entry carrying the declared
//     (deprecated) name and the pre-deprecation name.
//  2. Changed actions, visited in reverse chronological order, emit Change
//     entries threading the from-name/from-type backwards.
//  3. The Added action emits an Addition entry under the name and type the
//     walk has accumulated.
//  4. Every remaining version is filled with NoChange (carrying the
//     previously-deprecated flag forward) or Absent before the addition.
//
// Project requires that every action references a declared version; run
// ValidateItem first for the full invariant set.
func Project(item Item, reg *version.Registry) (*Changeset, error) {
	statuses := make(map[version.Version]ItemStatus, reg.Len())

	for _, action := range []struct {
		name string
		ver  *version.Version
	}{
		{"added", addedSince(item)},
		{"deprecated", deprecatedSince(item)},
	} {
		if action.ver != nil && !reg.Contains(*action.ver) {
			return nil, undeclaredVersionError(item, action.name, *action.ver)
		}
	}
	for _, change := range item.Changes {
		if !reg.Contains(change.Since) {
			return nil, undeclaredVersionError(item, "changed", change.Since)
		}
	}

	// The declared shape is the latest shape; the walk threads name and type
	// backwards through the actions.
	name := item.Name
	typ := item.Type

	if item.Deprecated != nil {
		previous := naming.StripDeprecatedPrefix(item.Name)
		statuses[item.Deprecated.Since] = ItemStatus{
			Kind:         StatusDeprecation,
			Name:         item.Name,
			Type:         typ,
			PreviousName: previous,
			Note:         item.Deprecated.Note,
		}
		name = previous
	}

	changes := make([]Changed, len(item.Changes))
	copy(changes, item.Changes)
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Since.Less(changes[j].Since)
	})

	for i := len(changes) - 1; i >= 0; i-- {
		change := changes[i]

		fromName := change.FromName
		if fromName == "" {
			fromName = name
		}
		fromType := change.FromType
		if fromType == "" {
			fromType = typ
		}

		statuses[change.Since] = ItemStatus{
			Kind:          StatusChange,
			Name:          name,
			Type:          typ,
			FromName:      fromName,
			FromType:      fromType,
			UpgradeFunc:   change.UpgradeFunc,
			DowngradeFunc: change.DowngradeFunc,
		}

		name = fromName
		typ = fromType
	}

	if item.Added != nil {
		statuses[item.Added.Since] = ItemStatus{
			Kind:    StatusAddition,
			Name:    name,
			Type:    typ,
			Default: item.Added.Default,
		}
	}

	fillRemainingVersions(item, reg, statuses, name, typ)

	return &Changeset{item: item, statuses: statuses}, nil
}

// fillRemainingVersions emits NoChange and Absent entries for every version
// without an explicit action, walking the registry in ascending order so each
// entry derives from its immediate predecessor.
func fillRemainingVersions(item Item, reg *version.Registry, statuses map[version.Version]ItemStatus, earliestName string, earliestType Type) {
	var prev *ItemStatus

	for i := 0; i < reg.Len(); i++ {
		v := reg.At(i).Version

		if s, ok := statuses[v]; ok {
			prev = &s
			continue
		}

		var status ItemStatus
		switch {
		case prev == nil && item.Added != nil:
			// Versions preceding the addition.
			status = ItemStatus{Kind: StatusAbsent}
		case prev == nil:
			// No addition declared: the item exists from the earliest
			// version under the name and type the backward walk ended with.
			status = ItemStatus{Kind: StatusNoChange, Name: earliestName, Type: earliestType}
		default:
			status = carryForward(*prev)
		}

		statuses[v] = status
		prev = &status
	}
}

// carryForward derives a version's status from its predecessor when no
// explicit action covers it.
func carryForward(prev ItemStatus) ItemStatus {
	switch prev.Kind {
	case StatusAbsent:
		return ItemStatus{Kind: StatusAbsent}
	case StatusDeprecation:
		return ItemStatus{
			Kind:                 StatusNoChange,
			Name:                 prev.Name,
			Type:                 prev.Type,
			Note:                 prev.Note,
			PreviouslyDeprecated: true,
		}
	default:
		return ItemStatus{
			Kind:                 StatusNoChange,
			Name:                 prev.Name,
			Type:                 prev.Type,
			Note:                 prev.Note,
			PreviouslyDeprecated: prev.PreviouslyDeprecated,
		}
	}
}

// ProjectAll projects every item. Projection is order-independent across
// items; results follow item declaration order.
func ProjectAll(items []Item, reg *version.Registry) ([]*Changeset, error) {
	out := make([]*Changeset, len(items))
	for i, item := range items {
		cs, err := Project(item, reg)
		if err != nil {
			return nil, err
		}
		out[i] = cs
	}
	return out, nil
}

func addedSince(item Item) *version.Version {
	if item.Added == nil {
		return nil
	}
	return &item.Added.Since
}

func deprecatedSince(item Item) *version.Version {
	if item.Deprecated == nil {
		return nil
	}
	return &item.Deprecated.Since
}

func undeclaredVersionError(item Item, action string, v version.Version) error {
	return &vererrors.LifecycleError{
		Item:    item.Name,
		Version: v.String(),
		Message: "the " + action + " action uses a version which is not declared",
		Cause:   vererrors.ErrActionVersionNotDeclared,
	}
}
