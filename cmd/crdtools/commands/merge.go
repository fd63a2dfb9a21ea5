package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/crdtools/crdtools/merger"
	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/version"
)

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	Output    string
	Stored    string
	Overwrite bool
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (.yaml or .json; default: print YAML to stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (.yaml or .json; default: print YAML to stdout)")
	fs.StringVar(&flags.Stored, "stored", "", "stored version placed first in the document (default: latest declared)")
	fs.BoolVar(&flags.Overwrite, "overwrite", false, "overwrite the output file if it exists")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: crdtools merge [flags] <file>\n\n")
		Writef(fs.Output(), "Merge all declared versions into a single multi-version schema document.\n")
		Writef(fs.Output(), "The stored version is listed first and is the only one marked storage: true.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  crdtools merge person.yaml\n")
		Writef(fs.Output(), "  crdtools merge -o person-crd.yaml --stored v1 person.yaml\n")
		Writef(fs.Output(), "  crdtools merge -o person-crd.json --overwrite person.yaml\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("merge command requires exactly one schema file path")
	}

	parsed, err := loadValidSchema(fs.Arg(0))
	if err != nil {
		return err
	}
	reg := parsed.Registry

	stored := reg.Latest().Version
	if flags.Stored != "" {
		stored, err = version.Parse(flags.Stored)
		if err != nil {
			return err
		}
	}

	changesets, err := schema.ProjectAll(parsed.Definition.Items, reg)
	if err != nil {
		return err
	}
	shapes := schema.MaterializeAll(changesets, reg)

	m := merger.New(merger.Config{
		Kind:      parsed.Definition.Kind,
		Group:     parsed.Definition.Group,
		Registry:  reg,
		Overwrite: flags.Overwrite,
	})

	doc, err := m.Merge(shapes, stored)
	if err != nil {
		return err
	}

	if flags.Output == "" {
		data, err := doc.ToYAML()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	if err := m.WriteResult(doc, flags.Output); err != nil {
		return err
	}
	fmt.Printf("Merged %d version(s) into %s (stored: %s)\n", len(doc.Versions), flags.Output, doc.StoredVersion())
	return nil
}
