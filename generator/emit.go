package generator

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/crdtools/crdtools/convert"
	"github.com/crdtools/crdtools/internal/naming"
	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/schemafile"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// typeName builds the version-suffixed struct name, e.g. "PersonV1alpha1".
func typeName(kind string, v version.Version) string {
	return naming.ToExported(kind) + naming.ToExported(v.String())
}

func fileName(kind string, suffix string) string {
	return strings.ToLower(kind) + "_" + suffix + ".go"
}

// emitVersionFile renders one version's struct from its materialized shape.
func emitVersionFile(pkg string, def *schemafile.Definition, shape schema.VersionShape) (GeneratedFile, error) {
	name := typeName(def.Kind, shape.Version)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by crdtools. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	fmt.Fprintf(&buf, "// %s is the %s record at version %s.\n", name, def.Kind, shape.Version)
	if def.Group != "" {
		fmt.Fprintf(&buf, "// API version: %s/%s.\n", def.Group, shape.Version)
	}
	fmt.Fprintf(&buf, "type %s struct {\n", name)
	for _, item := range shape.Items {
		if item.Deprecated {
			note := item.Note
			if note == "" {
				note = fmt.Sprintf("%s is deprecated since %s.", naming.ToExported(item.Name), shape.Version)
			}
			fmt.Fprintf(&buf, "\t// Deprecated: %s\n", note)
		}
		fmt.Fprintf(&buf, "\t%s %s `json:\"%s\"`\n", naming.ToExported(item.Name), goTypeFor(item.Type), item.Name)
	}
	buf.WriteString("}\n")

	return formatFile(fileName(def.Kind, shape.Version.String()), buf.Bytes())
}

// emitConversionFile renders the upgrade functions for every adjacent
// version pair, mirroring the conversion steps the engine would generate.
func emitConversionFile(pkg string, def *schemafile.Definition, reg *version.Registry, changesets []*schema.Changeset) (GeneratedFile, int, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by crdtools. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	var count int
	for i := 0; i < reg.Len()-1; i++ {
		from := reg.At(i).Version
		to := reg.At(i + 1).Version
		if err := emitUpgradeFunc(&buf, def, changesets, from, to); err != nil {
			return GeneratedFile{}, 0, err
		}
		count++
	}

	file, err := formatFile(fileName(def.Kind, "convert"), buf.Bytes())
	return file, count, err
}

func emitUpgradeFunc(buf *bytes.Buffer, def *schemafile.Definition, changesets []*schema.Changeset, from, to version.Version) error {
	fromType := typeName(def.Kind, from)
	toType := typeName(def.Kind, to)
	funcName := fmt.Sprintf("Upgrade%sTo%s", fromType, naming.ToExported(to.String()))

	fmt.Fprintf(buf, "// %s converts a %s from %s to %s.\n", funcName, def.Kind, from, to)
	fmt.Fprintf(buf, "func %s(in %s) %s {\n", funcName, fromType, toType)
	fmt.Fprintf(buf, "\treturn %s{\n", toType)

	for _, cs := range changesets {
		src, _ := cs.At(from)
		dst, _ := cs.At(to)
		if dst.Kind == schema.StatusAbsent {
			continue
		}

		field := naming.ToExported(dst.Name)
		switch dst.Kind {
		case schema.StatusAddition:
			fmt.Fprintf(buf, "\t\t%s: %s,\n", field, defaultLiteral(cs.Item(), dst.Type))
		case schema.StatusChange:
			expr := "in." + naming.ToExported(dst.FromName)
			if dst.FromType != dst.Type {
				if !convert.HasBuiltinConversion(dst.FromType, dst.Type) {
					return &vererrors.GenerateError{
						Item:        cs.Item().Name,
						FromVersion: from.String(),
						ToVersion:   to.String(),
						FromType:    string(dst.FromType),
						ToType:      string(dst.Type),
						Message:     "no conversion for type change",
						Cause:       vererrors.ErrUnconvertibleTypeChange,
					}
				}
				expr = fmt.Sprintf("%s(%s)", goTypeFor(dst.Type), expr)
			}
			fmt.Fprintf(buf, "\t\t%s: %s,\n", field, expr)
		case schema.StatusDeprecation:
			fmt.Fprintf(buf, "\t\t%s: in.%s,\n", field, naming.ToExported(dst.PreviousName))
		default:
			fmt.Fprintf(buf, "\t\t%s: in.%s,\n", field, naming.ToExported(src.Name))
		}
	}

	buf.WriteString("\t}\n}\n\n")
	return nil
}

// defaultLiteral renders an added item's default value as a Go expression.
// Non-literal defaults (and defaults whose kind cannot be rendered) fall
// back to the type's zero value.
func defaultLiteral(item schema.Item, t schema.Type) string {
	goType := goTypeFor(t)
	if item.Added == nil || item.Added.Default == nil {
		return zeroLiteral(goType)
	}
	switch v := item.Added.Default().(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case int, int64, uint64, float64, float32:
		if goType == "string" {
			return zeroLiteral(goType)
		}
		return fmt.Sprintf("%s(%v)", goType, v)
	default:
		return zeroLiteral(goType)
	}
}

func zeroLiteral(goType string) string {
	switch {
	case goType == "string":
		return `""`
	case goType == "bool":
		return "false"
	case strings.HasPrefix(goType, "[]"), strings.HasPrefix(goType, "map["):
		return "nil"
	case strings.HasPrefix(goType, "int"), strings.HasPrefix(goType, "uint"), strings.HasPrefix(goType, "float"):
		return "0"
	default:
		return goType + "{}"
	}
}

// goTypeFor maps a declared item type to the Go type used in generated
// structs. Rust-style names are translated; everything unrecognized is
// assumed to already be a Go type name.
func goTypeFor(t schema.Type) string {
	name := string(t)
	switch name {
	case "String":
		return "string"
	case "i8", "i16", "i32", "i64":
		return "int" + name[1:]
	case "isize":
		return "int"
	case "u8", "u16", "u32", "u64":
		return "uint" + name[1:]
	case "usize":
		return "uint"
	case "f32":
		return "float32"
	case "f64":
		return "float64"
	}
	switch {
	case strings.HasPrefix(name, "[]"):
		return "[]" + goTypeFor(schema.Type(strings.TrimPrefix(name, "[]")))
	case strings.HasPrefix(name, "Vec<") && strings.HasSuffix(name, ">"):
		return "[]" + goTypeFor(schema.Type(strings.TrimSuffix(strings.TrimPrefix(name, "Vec<"), ">")))
	case strings.HasPrefix(name, "HashMap<") && strings.HasSuffix(name, ">"):
		return mapTypeFor(strings.TrimSuffix(strings.TrimPrefix(name, "HashMap<"), ">"))
	case strings.HasPrefix(name, "BTreeMap<") && strings.HasSuffix(name, ">"):
		return mapTypeFor(strings.TrimSuffix(strings.TrimPrefix(name, "BTreeMap<"), ">"))
	default:
		return name
	}
}

func mapTypeFor(inner string) string {
	key, value, ok := strings.Cut(inner, ",")
	if !ok {
		return "map[string]any"
	}
	return fmt.Sprintf("map[%s]%s",
		goTypeFor(schema.Type(strings.TrimSpace(key))),
		goTypeFor(schema.Type(strings.TrimSpace(value))))
}

// formatFile formats generated source and resolves its imports, ensuring
// the output is immediately compilable.
func formatFile(name string, src []byte) (GeneratedFile, error) {
	formatted, err := imports.Process(name, src, nil)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("generator: formatting %s: %w", name, err)
	}
	return GeneratedFile{Name: name, Content: formatted}, nil
}
