package schemafile

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/version"
)

// Definition is a record type's declarative schema: its identity, declared
// versions, and items with lifecycle actions.
//
// Upgrade and downgrade conversion funcs are not expressible in YAML; they
// are registered programmatically on the items after loading when a type
// change needs one beyond the built-in numeric conversions.
type Definition struct {
	// Kind is the record type name, e.g. "Person".
	Kind string
	// Group is the API group, e.g. "example.crdtools.dev".
	Group string
	// Versions are the declared version definitions in file order.
	Versions []version.Definition
	// Items are the record type's items with their lifecycle actions.
	Items []schema.Item
}

// ParseResult is a loaded schema file plus its validation outcome.
type ParseResult struct {
	// Definition is the parsed schema definition.
	Definition *Definition
	// Registry is the version registry built from the declared versions.
	Registry *version.Registry
	// Validation accumulates every item lifecycle issue. Check Valid before
	// using the definition for generation or conversion.
	Validation *schema.ValidationResult
}

// File-level YAML structure. Field names follow the document format, not
// the engine types.
type fileDoc struct {
	Kind     string        `yaml:"kind"`
	Group    string        `yaml:"group"`
	Versions []fileVersion `yaml:"versions"`
	Items    []fileItem    `yaml:"items"`
}

type fileVersion struct {
	Name       string `yaml:"name"`
	Deprecated bool   `yaml:"deprecated"`
	Note       string `yaml:"note"`
}

type fileItem struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Added      *fileAdded      `yaml:"added"`
	Changed    []fileChanged   `yaml:"changed"`
	Deprecated *fileDeprecated `yaml:"deprecated"`
}

type fileAdded struct {
	Since   string `yaml:"since"`
	Default any    `yaml:"default"`
}

type fileChanged struct {
	Since    string `yaml:"since"`
	FromName string `yaml:"fromName"`
	FromType string `yaml:"fromType"`
}

type fileDeprecated struct {
	Since string `yaml:"since"`
	Note  string `yaml:"note"`
}

// Load reads and parses a schema file from disk.
func Load(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: reading %s: %w", path, err)
	}
	result, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schemafile: parsing %s: %w", path, err)
	}
	return result, nil
}

// Parse decodes a schema document, builds its version registry, and
// validates every item. YAML or registry failures return an error;
// per-item lifecycle issues accumulate in the result's Validation.
func Parse(data []byte) (*ParseResult, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc.Kind == "" {
		return nil, fmt.Errorf("document has no kind")
	}
	if len(doc.Versions) == 0 {
		return nil, fmt.Errorf("document declares no versions")
	}

	def := &Definition{
		Kind:     doc.Kind,
		Group:    doc.Group,
		Versions: make([]version.Definition, 0, len(doc.Versions)),
		Items:    make([]schema.Item, 0, len(doc.Items)),
	}

	for _, v := range doc.Versions {
		parsed, err := version.Parse(v.Name)
		if err != nil {
			return nil, fmt.Errorf("version %q: %w", v.Name, err)
		}
		def.Versions = append(def.Versions, version.Definition{
			Version:    parsed,
			Deprecated: v.Deprecated,
			Note:       v.Note,
		})
	}

	reg, err := version.Register(def.Versions, version.WithAllowUnsorted())
	if err != nil {
		return nil, err
	}

	for _, item := range doc.Items {
		converted, err := convertItem(item)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", item.Name, err)
		}
		def.Items = append(def.Items, converted)
	}

	return &ParseResult{
		Definition: def,
		Registry:   reg,
		Validation: schema.ValidateItems(def.Items, reg),
	}, nil
}

func convertItem(item fileItem) (schema.Item, error) {
	out := schema.Item{
		Name: item.Name,
		Type: schema.Type(item.Type),
	}
	if item.Name == "" {
		return out, fmt.Errorf("missing name")
	}
	if item.Type == "" {
		return out, fmt.Errorf("missing type")
	}

	if item.Added != nil {
		since, err := version.Parse(item.Added.Since)
		if err != nil {
			return out, fmt.Errorf("added.since: %w", err)
		}
		added := &schema.Added{Since: since}
		if item.Added.Default != nil {
			value := item.Added.Default
			added.Default = func() any { return value }
		}
		out.Added = added
	}

	for i, change := range item.Changed {
		since, err := version.Parse(change.Since)
		if err != nil {
			return out, fmt.Errorf("changed[%d].since: %w", i, err)
		}
		out.Changes = append(out.Changes, schema.Changed{
			Since:    since,
			FromName: change.FromName,
			FromType: schema.Type(change.FromType),
		})
	}

	if item.Deprecated != nil {
		since, err := version.Parse(item.Deprecated.Since)
		if err != nil {
			return out, fmt.Errorf("deprecated.since: %w", err)
		}
		out.Deprecated = &schema.Deprecated{Since: since, Note: item.Deprecated.Note}
	}
	return out, nil
}
