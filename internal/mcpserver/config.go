package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// SchemaFile is the default schema file used when a tool call omits
	// both file and content.
	SchemaFile string

	// IssueLimit is the default result limit for the validate tool.
	IssueLimit int

	// ValidateNoWarnings suppresses warnings from validate output by default.
	ValidateNoWarnings bool

	// MergeStored is the default stored version for the merge tool. Empty
	// means the latest declared version.
	MergeStored string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from CRDTOOLS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		SchemaFile:         os.Getenv("CRDTOOLS_SCHEMA_FILE"),
		IssueLimit:         envInt("CRDTOOLS_ISSUE_LIMIT", 100),
		ValidateNoWarnings: envBool("CRDTOOLS_VALIDATE_NO_WARNINGS", false),
		MergeStored:        os.Getenv("CRDTOOLS_MERGE_STORED"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
