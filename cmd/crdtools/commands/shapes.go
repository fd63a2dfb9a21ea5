package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/version"
)

// ShapesFlags contains flags for the shapes command
type ShapesFlags struct {
	Version string
	Format  string
}

// SetupShapesFlags creates and configures a FlagSet for the shapes command.
func SetupShapesFlags() (*flag.FlagSet, *ShapesFlags) {
	fs := flag.NewFlagSet("shapes", flag.ContinueOnError)
	flags := &ShapesFlags{}

	fs.StringVar(&flags.Version, "version", "", "restrict output to a single declared version")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: crdtools shapes [flags] <file>\n\n")
		Writef(fs.Output(), "Show the record type's materialized shape at each declared version.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  crdtools shapes person.yaml\n")
		Writef(fs.Output(), "  crdtools shapes --version v1beta1 person.yaml\n")
		Writef(fs.Output(), "  crdtools shapes --format yaml person.yaml\n")
	}

	return fs, flags
}

// shapeReport is one version's entry in the shapes command output.
type shapeReport struct {
	Version    string            `json:"version"              yaml:"version"`
	Deprecated bool              `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Note       string            `json:"note,omitempty"       yaml:"note,omitempty"`
	Items      []shapeItemReport `json:"items"                yaml:"items"`
}

type shapeItemReport struct {
	Name       string `json:"name"                 yaml:"name"`
	Type       string `json:"type"                 yaml:"type"`
	Deprecated bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Note       string `json:"note,omitempty"       yaml:"note,omitempty"`
}

// HandleShapes executes the shapes command
func HandleShapes(args []string) error {
	fs, flags := SetupShapesFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("shapes command requires exactly one schema file path")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	result, err := loadValidSchema(fs.Arg(0))
	if err != nil {
		return err
	}
	reg := result.Registry

	var only version.Version
	if flags.Version != "" {
		only, err = version.Parse(flags.Version)
		if err != nil {
			return err
		}
		if !reg.Contains(only) {
			return fmt.Errorf("version %s is not declared by the schema", only)
		}
	}

	changesets, err := schema.ProjectAll(result.Definition.Items, reg)
	if err != nil {
		return err
	}

	var reports []shapeReport
	for _, shape := range schema.MaterializeAll(changesets, reg) {
		if flags.Version != "" && shape.Version != only {
			continue
		}
		def := reg.At(reg.Index(shape.Version))
		report := shapeReport{
			Version:    shape.Version.String(),
			Deprecated: def.Deprecated,
			Note:       def.Note,
		}
		for _, item := range shape.Items {
			report.Items = append(report.Items, shapeItemReport{
				Name:       item.Name,
				Type:       string(item.Type),
				Deprecated: item.Deprecated,
				Note:       item.Note,
			})
		}
		reports = append(reports, report)
	}

	if flags.Format != FormatText {
		return OutputStructured(reports, flags.Format)
	}

	fmt.Printf("%s (%s)\n\n", result.Definition.Kind, result.Definition.Group)
	for _, report := range reports {
		fmt.Printf("%s", report.Version)
		if report.Deprecated {
			fmt.Printf(" (deprecated)")
		}
		fmt.Println()
		for _, item := range report.Items {
			fmt.Printf("  %-24s %s", item.Name, item.Type)
			if item.Deprecated {
				fmt.Printf("  deprecated")
				if item.Note != "" {
					fmt.Printf(": %s", item.Note)
				}
			}
			fmt.Println()
		}
		fmt.Println()
	}

	return nil
}
