package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crdtools/crdtools/merger"
	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mergeInput struct {
	Schema schemaSource `json:"schema"           jsonschema:"The schema to merge"`
	Stored string       `json:"stored,omitempty" jsonschema:"The stored version placed first in the document (default: CRDTOOLS_MERGE_STORED, then the latest declared version)"`
	Format string       `json:"format,omitempty" jsonschema:"Output format: yaml (default) or json"`
}

type mergeOutput struct {
	StoredVersion string `json:"stored_version"`
	Format        string `json:"format"`
	Document      string `json:"document"`
}

func handleMerge(_ context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	format := input.Format
	if format == "" {
		format = "yaml"
	}
	if format != "yaml" && format != "json" {
		return errResult(fmt.Errorf("unsupported format %q: use yaml or json", input.Format)), mergeOutput{}, nil
	}

	parsed, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	if !parsed.Validation.Valid {
		return errResult(parsed.Validation.Err()), mergeOutput{}, nil
	}

	reg := parsed.Registry
	storedName := input.Stored
	if storedName == "" {
		storedName = cfg.MergeStored
	}
	stored := reg.Latest().Version
	if storedName != "" {
		stored, err = version.Parse(storedName)
		if err != nil {
			return errResult(err), mergeOutput{}, nil
		}
	}

	changesets, err := schema.ProjectAll(parsed.Definition.Items, reg)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	shapes := schema.MaterializeAll(changesets, reg)

	doc, err := merger.Merge(shapes, stored, merger.Config{
		Kind:     parsed.Definition.Kind,
		Group:    parsed.Definition.Group,
		Registry: reg,
	})
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	var data []byte
	if format == "json" {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = doc.ToYAML()
	}
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	return nil, mergeOutput{
		StoredVersion: doc.StoredVersion(),
		Format:        format,
		Document:      string(data),
	}, nil
}
