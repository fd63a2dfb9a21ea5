package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/crdtools/crdtools/generator"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	OutputDir string
	Package   string
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.OutputDir, "o", "", "output directory (required)")
	fs.StringVar(&flags.OutputDir, "output", "", "output directory (required)")
	fs.StringVar(&flags.Package, "package", "types", "Go package name for generated code")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: crdtools generate [flags] <file>\n\n")
		Writef(fs.Output(), "Generate Go types and upgrade converters from a schema file.\n")
		Writef(fs.Output(), "Emits one source file per declared version plus a conversion file.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  crdtools generate -o ./gen person.yaml\n")
		Writef(fs.Output(), "  crdtools generate -o ./gen -package person person.yaml\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one schema file path")
	}
	if flags.OutputDir == "" {
		fs.Usage()
		return fmt.Errorf("generate command requires an output directory (-o)")
	}

	parsed, err := loadValidSchema(fs.Arg(0))
	if err != nil {
		return err
	}

	gen := generator.New()
	gen.PackageName = flags.Package

	result, err := gen.Generate(parsed.Definition)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if err := result.WriteFiles(flags.OutputDir); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	fmt.Printf("Generated %d file(s) in %s:\n", len(result.Files), flags.OutputDir)
	for _, file := range result.Files {
		fmt.Printf("  %s\n", file.Name)
	}
	return nil
}
