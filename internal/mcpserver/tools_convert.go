package mcpserver

import (
	"context"

	"github.com/crdtools/crdtools/convert"
	"github.com/crdtools/crdtools/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type convertInput struct {
	Schema schemaSource   `json:"schema" jsonschema:"The schema the object conforms to"`
	Object map[string]any `json:"object" jsonschema:"The object to convert"`
	From   string         `json:"from"   jsonschema:"The object's current version (e.g. v1alpha1)"`
	To     string         `json:"to"     jsonschema:"The desired version (e.g. v1)"`
}

type convertHop struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type convertOutput struct {
	Object    map[string]any `json:"object"`
	Direction string         `json:"direction"`
	Hops      []convertHop   `json:"hops,omitempty"`
}

func handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	parsed, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	from, err := version.Parse(input.From)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}
	to, err := version.Parse(input.To)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	pipeline, err := convert.NewPipeline(parsed.Registry, parsed.Definition.Items)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	path, err := convert.ResolvePath(parsed.Registry, from, to)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	converted, err := pipeline.Convert(input.Object, from, to)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	output := convertOutput{
		Object:    converted,
		Direction: path.Direction.String(),
		Hops:      makeSlice[convertHop](len(path.Hops)),
	}
	for _, hop := range path.Hops {
		output.Hops = append(output.Hops, convertHop{
			From: hop.From.String(),
			To:   hop.To.String(),
		})
	}

	return nil, output, nil
}
