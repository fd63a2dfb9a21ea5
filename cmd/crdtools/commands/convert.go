package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/crdtools/crdtools/convert"
	"github.com/crdtools/crdtools/internal/fileutil"
	"github.com/crdtools/crdtools/version"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	From   string
	To     string
	Object string
	Output string
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.From, "from", "", "the object's current version (required)")
	fs.StringVar(&flags.To, "to", "", "the desired version (required)")
	fs.StringVar(&flags.Object, "object", "-", "path to a JSON object file, or '-' for stdin")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: crdtools convert [flags] <file>\n\n")
		Writef(fs.Output(), "Convert a JSON object between two declared versions of the schema.\n")
		Writef(fs.Output(), "Upgrades use generated adjacent-version steps; downgrades require the\n")
		Writef(fs.Output(), "schema to declare downgrade conversion functions.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  crdtools convert --from v1alpha1 --to v1 --object person.json person.yaml\n")
		Writef(fs.Output(), "  cat person.json | crdtools convert --from v1alpha1 --to v1 person.yaml\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one schema file path")
	}
	if flags.From == "" || flags.To == "" {
		fs.Usage()
		return fmt.Errorf("convert command requires --from and --to versions")
	}

	from, err := version.Parse(flags.From)
	if err != nil {
		return err
	}
	to, err := version.Parse(flags.To)
	if err != nil {
		return err
	}

	parsed, err := loadValidSchema(fs.Arg(0))
	if err != nil {
		return err
	}

	var data []byte
	if flags.Object == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(flags.Object)
		if err != nil {
			return fmt.Errorf("reading object: %w", err)
		}
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding object: %w", err)
	}

	pipeline, err := convert.NewPipeline(parsed.Registry, parsed.Definition.Items)
	if err != nil {
		return err
	}

	converted, err := pipeline.Convert(obj, from, to)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(converted, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding object: %w", err)
	}
	out = append(out, '\n')

	if flags.Output == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(flags.Output, out, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
