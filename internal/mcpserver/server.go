// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes crdtools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/crdtools/crdtools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `crdtools MCP server — validates, inspects, converts, and merges multi-version record schemas.

Schemas are declared in YAML files (kind, group, ordered versions, items with added/changed/deprecated lifecycle actions). Every tool accepts the schema by file path or inline content.

Configuration: All defaults are configurable via CRDTOOLS_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- CRDTOOLS_SCHEMA_FILE — default schema file used when a tool call omits the schema
- CRDTOOLS_ISSUE_LIMIT (default: 100) — default result limit for the validate tool
- CRDTOOLS_VALIDATE_NO_WARNINGS (default: false) — suppress warnings by default
- CRDTOOLS_MERGE_STORED — default stored version for the merge tool (default: latest)`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "crdtools", Version: crdtools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a schema file's item lifecycles against its declared versions. Returns every violated rule with item, version, and action attribution. Use no_warnings to focus on errors first; use offset/limit to paginate through results. Warning suppression defaults to CRDTOOLS_VALIDATE_NO_WARNINGS.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "shapes",
		Description: "Materialize the concrete shape of the record type at each declared version: the items present, their resolved names and types, and deprecation state. Use version to restrict output to a single version.",
	}, handleShapes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an object between two declared versions of the schema. Upgrades fold generated adjacent-version steps; downgrades require the schema to declare downgrade conversion functions. Returns the converted object and the hop sequence taken.",
	}, handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge all versions of the schema into a single multi-version document with per-version OpenAPI schemas, in stored-version-first order. Stored version defaults to CRDTOOLS_MERGE_STORED, then the latest declared version. Output format is yaml (default) or json.",
	}, handleMerge)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.IssueLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.IssueLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
