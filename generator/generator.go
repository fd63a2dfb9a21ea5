package generator

import (
	"fmt"

	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/schemafile"
	"github.com/crdtools/crdtools/version"
)

// GeneratedFile represents a single generated source file.
type GeneratedFile struct {
	// Name is the file name, e.g. "person_v1alpha1.go".
	Name string
	// Content is the generated Go source code.
	Content []byte
}

// GenerateResult contains the results of generating versioned types from a
// schema definition.
type GenerateResult struct {
	// Files contains all generated files, one per version plus the
	// conversion file.
	Files []GeneratedFile
	// PackageName is the Go package name used in generation.
	PackageName string
	// GeneratedTypes is the count of version structs generated.
	GeneratedTypes int
	// GeneratedConverters is the count of upgrade functions generated.
	GeneratedConverters int
}

// GetFile returns the generated file with the given name, or nil if not found.
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator emits Go source for every declared version of a record type:
// one struct per version reflecting the materialized shape, plus upgrade
// functions mirroring the adjacent-version conversion steps.
type Generator struct {
	// PackageName is the Go package name for generated code.
	// If empty, defaults to "types".
	PackageName string
}

// New creates a Generator with default settings.
func New() *Generator {
	return &Generator{PackageName: "types"}
}

// Generate is a convenience wrapper using a default Generator.
func Generate(def *schemafile.Definition) (*GenerateResult, error) {
	return New().Generate(def)
}

// Generate validates the definition and emits one source file per declared
// version plus a conversion file. All emitted code is formatted and has its
// imports resolved; a formatting failure indicates a generator bug and is
// returned as an error.
func (g *Generator) Generate(def *schemafile.Definition) (*GenerateResult, error) {
	if def == nil {
		return nil, fmt.Errorf("generator: nil definition")
	}
	if def.Kind == "" {
		return nil, fmt.Errorf("generator: definition has no kind")
	}

	reg, err := version.Register(def.Versions, version.WithAllowUnsorted())
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateItems(def.Items, reg).Err(); err != nil {
		return nil, err
	}
	changesets, err := schema.ProjectAll(def.Items, reg)
	if err != nil {
		return nil, err
	}

	pkg := g.PackageName
	if pkg == "" {
		pkg = "types"
	}

	result := &GenerateResult{PackageName: pkg}

	for _, shape := range schema.MaterializeAll(changesets, reg) {
		file, err := emitVersionFile(pkg, def, shape)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, file)
		result.GeneratedTypes++
	}

	if reg.Len() > 1 {
		file, count, err := emitConversionFile(pkg, def, reg, changesets)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, file)
		result.GeneratedConverters = count
	}

	return result, nil
}
