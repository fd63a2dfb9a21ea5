package merger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/version"
)

// outputFileMode keeps merged documents owner read/write only.
const outputFileMode = 0600

// Config controls how the merged document is assembled.
type Config struct {
	// Kind is the record type name placed in the document.
	Kind string
	// Group is the API group placed in the document.
	Group string
	// Registry supplies per-version deprecation flags and notes. Optional;
	// without it no version is marked deprecated.
	Registry *version.Registry
	// Overwrite allows WriteResult to replace an existing file.
	Overwrite bool
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{}
}

// Merger assembles merged multi-version schema documents.
//
// Merger instances are safe for concurrent use; Merge reads only the
// configuration and its arguments.
type Merger struct {
	config Config
}

// New creates a new Merger instance with the provided configuration.
func New(config Config) *Merger {
	return &Merger{config: config}
}

// Merge produces one document covering every shape, with stored as the
// authoritative version. The stored version's entry is listed first and is
// the only entry with the storage marker set; the remaining versions follow
// in their given order. Merge fails when stored is not among the shapes.
func (m *Merger) Merge(shapes []schema.VersionShape, stored version.Version) (*MergedDocument, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("merger: no shapes to merge")
	}

	var storedEntry *MergedVersion
	rest := make([]MergedVersion, 0, len(shapes)-1)
	for _, shape := range shapes {
		entry := m.versionEntry(shape)
		if shape.Version.Equal(stored) {
			entry.Storage = true
			storedEntry = &entry
			continue
		}
		rest = append(rest, entry)
	}
	if storedEntry == nil {
		return nil, fmt.Errorf("merger: stored version %s is not among the merged shapes", stored)
	}

	doc := &MergedDocument{
		Kind:     m.config.Kind,
		Group:    m.config.Group,
		Versions: append([]MergedVersion{*storedEntry}, rest...),
	}
	return doc, nil
}

func (m *Merger) versionEntry(shape schema.VersionShape) MergedVersion {
	entry := MergedVersion{
		Name:   shape.Version.String(),
		Served: true,
		Schema: VersionSchema{
			Type:       "object",
			Properties: make(map[string]Property, len(shape.Items)),
		},
	}
	for _, item := range shape.Items {
		entry.Schema.Properties[item.Name] = propertyFor(item)
	}

	if m.config.Registry != nil {
		if i := m.config.Registry.Index(shape.Version); i >= 0 {
			def := m.config.Registry.At(i)
			if def.Deprecated {
				entry.Deprecated = true
				entry.DeprecationWarning = deprecationWarning(shape.Version, def.Note)
			}
		}
	}
	return entry
}

func deprecationWarning(v version.Version, note string) string {
	if note != "" {
		return note
	}
	return fmt.Sprintf("version %s is deprecated", v)
}

// WriteResult writes a merged document to a file in YAML or JSON format,
// chosen by the output path's extension (".json" selects JSON, anything
// else YAML). An existing file is refused unless Overwrite is configured.
func (m *Merger) WriteResult(doc *MergedDocument, outputPath string) error {
	if !m.config.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("merger: output file %s already exists", outputPath)
		}
	}

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(outputPath), ".json") {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = doc.ToYAML()
	}
	if err != nil {
		return fmt.Errorf("merger: failed to marshal merged document: %w", err)
	}

	if err := os.WriteFile(outputPath, data, outputFileMode); err != nil {
		return fmt.Errorf("merger: failed to write output file: %w", err)
	}
	return nil
}

// Merge is a convenience wrapper building a Merger from config and merging
// in one call.
func Merge(shapes []schema.VersionShape, stored version.Version, config Config) (*MergedDocument, error) {
	return New(config).Merge(shapes, stored)
}
