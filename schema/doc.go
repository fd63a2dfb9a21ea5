// Package schema provides the data model of a declaratively versioned record
// type, lifecycle validation, changeset projection and shape materialization.
//
// Import path: github.com/crdtools/crdtools/schema
//
// An [Item] is a named field or variant of the logical record type. Its
// declared name and type always describe the latest shape; [Added], [Changed]
// and [Deprecated] actions describe how the item evolved across the versions
// declared in a [version.Registry].
//
// # Pipeline
//
// Validation, projection and materialization run leaves-first at schema
// compile time:
//
//	result := schema.ValidateItems(items, reg)
//	if !result.Valid {
//	    for _, issue := range result.Issues {
//	        fmt.Println(issue)
//	    }
//	    return result.Err()
//	}
//	changesets, _ := schema.ProjectAll(items, reg)
//	shapes := schema.MaterializeAll(changesets, reg)
//
// [ValidateItem] accumulates every violated invariant instead of failing
// fast. [Project] derives exactly one [ItemStatus] per declared version.
// [Materialize] filters a version's statuses into its concrete [VersionShape].
//
// All outputs are immutable once computed and safe for concurrent reads.
package schema
