package schema

import "github.com/crdtools/crdtools/version"

// ShapeItem is one present item in a version's concrete shape, under its
// resolved name and type.
type ShapeItem struct {
	// Name is the item's name at this version.
	Name string
	// Type is the item's type at this version.
	Type Type
	// Deprecated indicates the item is in its deprecated form at this version.
	Deprecated bool
	// Note is the deprecation note, when one was declared.
	Note string
}

// VersionShape is the concrete shape of the record type at one version: the
// ordered list of items present at that version. Item order follows the
// declaration order of the underlying items.
type VersionShape struct {
	// Version is the version this shape describes.
	Version version.Version
	// Items are the present items with resolved names and types.
	Items []ShapeItem
}

// Item returns the shape item with the given name, or false when no item of
// that name is present at this version.
func (s VersionShape) Item(name string) (ShapeItem, bool) {
	for _, item := range s.Items {
		if item.Name == name {
			return item, true
		}
	}
	return ShapeItem{}, false
}

// Materialize combines all items' changesets into the concrete shape at v.
// Items whose status at v is absent are dropped; all others resolve to their
// final name and type. Pure function of the changesets; the second return
// value is false when v is not covered by the changesets.
func Materialize(changesets []*Changeset, v version.Version) (VersionShape, bool) {
	shape := VersionShape{Version: v}

	for _, cs := range changesets {
		status, ok := cs.At(v)
		if !ok {
			return VersionShape{}, false
		}
		if status.Kind == StatusAbsent {
			continue
		}

		item := ShapeItem{
			Name:       status.Name,
			Type:       status.Type,
			Deprecated: status.Deprecated(),
		}
		if item.Deprecated {
			item.Note = status.Note
		}
		shape.Items = append(shape.Items, item)
	}

	return shape, true
}

// MaterializeAll produces the shape of every version in the registry, in
// ascending version order.
func MaterializeAll(changesets []*Changeset, reg *version.Registry) []VersionShape {
	shapes := make([]VersionShape, 0, reg.Len())
	for i := 0; i < reg.Len(); i++ {
		// Changesets are total over the registry, so the lookup cannot miss.
		shape, _ := Materialize(changesets, reg.At(i).Version)
		shapes = append(shapes, shape)
	}
	return shapes
}
