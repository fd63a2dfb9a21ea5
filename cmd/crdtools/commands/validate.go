package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/crdtools/crdtools"
	"github.com/crdtools/crdtools/internal/severity"
	"github.com/crdtools/crdtools/schemafile"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	NoWarnings bool
	Quiet      bool
	Format     string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: crdtools validate [flags] <file>\n\n")
		Writef(fs.Output(), "Validate a schema file's item lifecycles against its declared versions.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  crdtools validate person.yaml\n")
		Writef(fs.Output(), "  crdtools validate --no-warnings person.yaml\n")
		Writef(fs.Output(), "  crdtools validate --format json person.yaml | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed with errors\n")
	}

	return fs, flags
}

// validateReport is the structured output of the validate command.
type validateReport struct {
	Valid        bool     `json:"valid"            yaml:"valid"`
	Kind         string   `json:"kind"             yaml:"kind"`
	Versions     []string `json:"versions"         yaml:"versions"`
	ErrorCount   int      `json:"error_count"      yaml:"error_count"`
	WarningCount int      `json:"warning_count"    yaml:"warning_count"`
	Errors       []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one schema file path")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	result, err := loadSchema(fs.Arg(0))
	if err != nil {
		return err
	}

	report := buildValidateReport(result, flags.NoWarnings)

	if flags.Format != FormatText {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !report.Valid {
			os.Exit(1)
		}
		return nil
	}

	if !flags.Quiet {
		fmt.Printf("crdtools version: %s\n", crdtools.Version())
		fmt.Printf("Schema: %s\n", fs.Arg(0))
		fmt.Printf("Kind: %s\n", report.Kind)
		fmt.Printf("Versions: %s\n\n", strings.Join(report.Versions, ", "))
	}

	if len(report.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", report.ErrorCount)
		for _, msg := range report.Errors {
			fmt.Printf("  %s\n", msg)
		}
		fmt.Println()
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", report.WarningCount)
		for _, msg := range report.Warnings {
			fmt.Printf("  %s\n", msg)
		}
		fmt.Println()
	}

	if report.Valid {
		fmt.Printf("✓ Validation passed")
		if report.WarningCount > 0 {
			fmt.Printf(" with %d warning(s)", report.WarningCount)
		}
		fmt.Println()
	} else {
		fmt.Printf("✗ Validation failed: %d error(s)", report.ErrorCount)
		if report.WarningCount > 0 {
			fmt.Printf(", %d warning(s)", report.WarningCount)
		}
		fmt.Println()
		os.Exit(1)
	}

	return nil
}

func buildValidateReport(result *schemafile.ParseResult, noWarnings bool) validateReport {
	report := validateReport{
		Valid:      result.Validation.Valid,
		Kind:       result.Definition.Kind,
		Versions:   result.Registry.Strings(),
		ErrorCount: result.Validation.ErrorCount,
	}
	for _, issue := range result.Validation.Issues {
		if issue.Severity == severity.SeverityWarning {
			if !noWarnings {
				report.Warnings = append(report.Warnings, issue.String())
			}
			continue
		}
		report.Errors = append(report.Errors, issue.String())
	}
	if !noWarnings {
		report.WarningCount = result.Validation.WarningCount
	}
	return report
}
