package mcpserver

import (
	"context"
	"fmt"

	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type shapesInput struct {
	Schema  schemaSource `json:"schema"            jsonschema:"The schema to materialize"`
	Version string       `json:"version,omitempty" jsonschema:"Restrict output to this declared version (e.g. v1beta1)"`
}

type shapeItemSummary struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Deprecated bool   `json:"deprecated,omitempty"`
	Note       string `json:"note,omitempty"`
}

type shapeSummary struct {
	Version    string             `json:"version"`
	Deprecated bool               `json:"deprecated,omitempty"`
	Note       string             `json:"note,omitempty"`
	Items      []shapeItemSummary `json:"items"`
}

type shapesOutput struct {
	Kind   string         `json:"kind"`
	Group  string         `json:"group"`
	Shapes []shapeSummary `json:"shapes"`
}

func handleShapes(_ context.Context, _ *mcp.CallToolRequest, input shapesInput) (*mcp.CallToolResult, shapesOutput, error) {
	parsed, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), shapesOutput{}, nil
	}
	if !parsed.Validation.Valid {
		return errResult(parsed.Validation.Err()), shapesOutput{}, nil
	}

	reg := parsed.Registry
	var only version.Version
	if input.Version != "" {
		only, err = version.Parse(input.Version)
		if err != nil {
			return errResult(err), shapesOutput{}, nil
		}
		if !reg.Contains(only) {
			return errResult(fmt.Errorf("version %s is not declared by the schema", only)), shapesOutput{}, nil
		}
	}

	changesets, err := schema.ProjectAll(parsed.Definition.Items, reg)
	if err != nil {
		return errResult(err), shapesOutput{}, nil
	}
	shapes := schema.MaterializeAll(changesets, reg)

	output := shapesOutput{
		Kind:   parsed.Definition.Kind,
		Group:  parsed.Definition.Group,
		Shapes: makeSlice[shapeSummary](len(shapes)),
	}
	for _, shape := range shapes {
		if input.Version != "" && shape.Version != only {
			continue
		}
		def := reg.At(reg.Index(shape.Version))
		summary := shapeSummary{
			Version:    shape.Version.String(),
			Deprecated: def.Deprecated,
			Note:       def.Note,
			Items:      makeSlice[shapeItemSummary](len(shape.Items)),
		}
		for _, item := range shape.Items {
			summary.Items = append(summary.Items, shapeItemSummary{
				Name:       item.Name,
				Type:       string(item.Type),
				Deprecated: item.Deprecated,
				Note:       item.Note,
			})
		}
		output.Shapes = append(output.Shapes, summary)
	}

	return nil, output, nil
}
