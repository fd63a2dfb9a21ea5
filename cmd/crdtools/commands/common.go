// Package commands provides CLI command handlers for crdtools.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/crdtools/crdtools/schemafile"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// Writef writes formatted output, reporting write failures to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// loadSchema loads and parses the schema file named by the single positional
// argument of a command.
func loadSchema(path string) (*schemafile.ParseResult, error) {
	result, err := schemafile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	return result, nil
}

// loadValidSchema loads the schema and fails when lifecycle validation found
// errors. Commands that derive output from the schema (shapes, generate,
// merge, convert, serve) require a valid schema; the validate command
// reports issues instead.
func loadValidSchema(path string) (*schemafile.ParseResult, error) {
	result, err := loadSchema(path)
	if err != nil {
		return nil, err
	}
	if !result.Validation.Valid {
		return nil, fmt.Errorf("schema is invalid: %w (run 'crdtools validate %s' for details)", result.Validation.Err(), path)
	}
	return result, nil
}
