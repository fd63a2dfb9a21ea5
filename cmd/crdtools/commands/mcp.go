package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/crdtools/crdtools/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: crdtools mcp\n\n")
		Writef(fs.Output(), "Run the MCP (Model Context Protocol) server over stdio.\n")
		Writef(fs.Output(), "Exposes validate, shapes, convert, and merge tools to MCP clients.\n\n")
		Writef(fs.Output(), "Configuration is read from CRDTOOLS_* environment variables:\n")
		Writef(fs.Output(), "  CRDTOOLS_SCHEMA_FILE            default schema file for tool calls\n")
		Writef(fs.Output(), "  CRDTOOLS_ISSUE_LIMIT            default validate result limit (default 100)\n")
		Writef(fs.Output(), "  CRDTOOLS_VALIDATE_NO_WARNINGS   suppress warnings by default\n")
		Writef(fs.Output(), "  CRDTOOLS_MERGE_STORED           default stored version for merge\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
