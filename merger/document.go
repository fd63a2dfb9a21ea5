package merger

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/crdtools/crdtools/schema"
)

// MergedDocument describes every declared version of one record type in a
// single document, suitable for registration with an external schema
// registry or API server. Exactly one version carries the storage marker.
type MergedDocument struct {
	// Kind is the record type name.
	Kind string `yaml:"kind" json:"kind"`
	// Group is the API group the record type belongs to.
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
	// Versions lists one entry per declared version, stored version first.
	Versions []MergedVersion `yaml:"versions" json:"versions"`
}

// MergedVersion is one version's entry in the merged document.
type MergedVersion struct {
	// Name is the version string, e.g. "v1beta1".
	Name string `yaml:"name" json:"name"`
	// Served indicates the version is available to clients.
	Served bool `yaml:"served" json:"served"`
	// Storage marks the authoritative version for persistence. Exactly one
	// version in a document has it set.
	Storage bool `yaml:"storage" json:"storage"`
	// Deprecated indicates the whole version is deprecated.
	Deprecated bool `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	// DeprecationWarning is the message served alongside a deprecated version.
	DeprecationWarning string `yaml:"deprecationWarning,omitempty" json:"deprecationWarning,omitempty"`
	// Schema is the structural schema for the version's shape.
	Schema VersionSchema `yaml:"schema" json:"schema"`
}

// VersionSchema is an OpenAPI-v3-style structural schema derived from a
// materialized version shape.
type VersionSchema struct {
	Type       string              `yaml:"type" json:"type"`
	Properties map[string]Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Property describes one item of a version's shape.
type Property struct {
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string `yaml:"format,omitempty" json:"format,omitempty"`
	Items       *Property `yaml:"items,omitempty" json:"items,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// StoredVersion returns the name of the version marked for storage.
func (d *MergedDocument) StoredVersion() string {
	for _, v := range d.Versions {
		if v.Storage {
			return v.Name
		}
	}
	return ""
}

// MarshalYAML is implemented implicitly through the yaml struct tags; ToYAML
// renders the document as a YAML byte slice.
func (d *MergedDocument) ToYAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// propertyFor maps a declared item type to its structural schema property.
// Declared types are opaque names; the mapping is best-effort and falls back
// to an untyped property for unrecognized names.
func propertyFor(item schema.ShapeItem) Property {
	p := openAPIType(item.Type)
	if item.Deprecated {
		p.Deprecated = true
		if item.Note != "" {
			p.Description = item.Note
		}
	}
	return p
}

func openAPIType(t schema.Type) Property {
	name := string(t)
	switch name {
	case "string", "String":
		return Property{Type: "string"}
	case "bool":
		return Property{Type: "boolean"}
	case "int8", "int16", "int32", "i8", "i16", "i32", "uint8", "uint16", "u8", "u16":
		return Property{Type: "integer", Format: "int32"}
	case "int", "int64", "i64", "isize", "uint", "uint32", "uint64", "u32", "u64", "usize":
		return Property{Type: "integer", Format: "int64"}
	case "float32", "f32":
		return Property{Type: "number", Format: "float"}
	case "float64", "f64":
		return Property{Type: "number", Format: "double"}
	}
	switch {
	case strings.HasPrefix(name, "[]"):
		inner := openAPIType(schema.Type(strings.TrimPrefix(name, "[]")))
		return Property{Type: "array", Items: &inner}
	case strings.HasPrefix(name, "Vec<") && strings.HasSuffix(name, ">"):
		inner := openAPIType(schema.Type(strings.TrimSuffix(strings.TrimPrefix(name, "Vec<"), ">")))
		return Property{Type: "array", Items: &inner}
	case strings.HasPrefix(name, "map["), strings.HasPrefix(name, "HashMap<"), strings.HasPrefix(name, "BTreeMap<"):
		return Property{Type: "object"}
	default:
		return Property{Type: "object"}
	}
}
