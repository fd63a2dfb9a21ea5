package mcpserver

import (
	"context"

	"github.com/crdtools/crdtools/internal/severity"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Schema     schemaSource `json:"schema"                jsonschema:"The schema to validate"`
	NoWarnings *bool        `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Offset     int          `json:"offset,omitempty"      jsonschema:"Skip the first N issues (for pagination)"`
	Limit      int          `json:"limit,omitempty"       jsonschema:"Maximum number of issues to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Item    string `json:"item,omitempty"`
	Version string `json:"version,omitempty"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	Kind         string          `json:"kind"`
	Versions     []string        `json:"versions"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Returned     int             `json:"returned"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	parsed, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result := parsed.Validation
	output := validateOutput{
		Valid:      result.Valid,
		Kind:       parsed.Definition.Kind,
		Versions:   parsed.Registry.Strings(),
		ErrorCount: result.ErrorCount,
	}

	output.Errors = makeSlice[validateIssue](result.ErrorCount)
	for _, issue := range result.Issues {
		summary := validateIssue{
			Item:    issue.Item,
			Version: issue.Version,
			Action:  issue.Action,
			Message: issue.Message,
		}
		if issue.Severity == severity.SeverityWarning {
			if !noWarnings {
				output.Warnings = append(output.Warnings, summary)
			}
			continue
		}
		output.Errors = append(output.Errors, summary)
	}
	if !noWarnings {
		output.WarningCount = result.WarningCount
	}

	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}
