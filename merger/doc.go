// Package merger assembles the merged multi-version schema document.
//
// A merged document carries one entry per declared version of a record
// type, each with a structural schema derived from the version's
// materialized shape. Exactly one version is marked as the storage version
// (authoritative for persistence) and is listed first; every other version
// follows in registry order.
//
//	m := merger.New(merger.Config{Kind: "Person", Group: "example.crdtools.dev"})
//	doc, err := m.Merge(shapes, storedVersion)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := m.WriteResult(doc, "person.yaml"); err != nil {
//		log.Fatal(err)
//	}
//
// Documents marshal to YAML by default; a ".json" output path selects
// indented JSON instead.
package merger
