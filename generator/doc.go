// Package generator emits Go source files for the declared versions of a
// record type.
//
// For each version the generator produces a struct reflecting the version's
// materialized shape, with json tags matching the declared item names and
// Deprecated doc comments on deprecated fields. A conversion file carries
// one upgrade function per adjacent version pair, mirroring the conversion
// steps the engine generates at runtime.
//
//	result, err := generator.Generate(parsed.Definition)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./generated"); err != nil {
//		log.Fatal(err)
//	}
//
// Output is formatted with goimports-equivalent processing, so generated
// files are immediately compilable.
package generator
