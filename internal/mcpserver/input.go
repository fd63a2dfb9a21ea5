package mcpserver

import (
	"errors"

	"github.com/crdtools/crdtools/schemafile"
)

// schemaSource represents the two ways a schema can be provided to a tool.
// At most one of File or Content may be set; when both are empty the
// CRDTOOLS_SCHEMA_FILE default applies.
type schemaSource struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a schema YAML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline schema content (YAML)"`
}

var errNoSchema = errors.New("no schema provided: set file or content, or export CRDTOOLS_SCHEMA_FILE")

// resolve loads and parses the schema from whichever source is set.
func (s schemaSource) resolve() (*schemafile.ParseResult, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, errors.New("schema file and content are mutually exclusive")
	case s.Content != "":
		return schemafile.Parse([]byte(s.Content))
	case s.File != "":
		return schemafile.Load(s.File)
	case cfg.SchemaFile != "":
		return schemafile.Load(cfg.SchemaFile)
	default:
		return nil, errNoSchema
	}
}
