// Package schemafile loads declarative schema definitions from YAML.
//
// A schema file declares a record type's kind, group, ordered versions, and
// items with their lifecycle actions:
//
//	kind: Person
//	group: example.crdtools.dev
//	versions:
//	  - name: v1alpha1
//	  - name: v1beta1
//	    deprecated: true
//	    note: "use v1"
//	  - name: v1
//	items:
//	  - name: deprecatedGau
//	    type: string
//	    added: {since: v1alpha1, default: "foo"}
//	    changed:
//	      - {since: v1beta1, fromName: gau}
//	    deprecated: {since: v1, note: "gone in v2"}
//
// Load builds the version registry and validates every item, accumulating
// lifecycle issues in the result rather than failing on the first one.
// Literal default values become default value providers; conversion funcs
// for type changes are registered on the items programmatically after
// loading.
package schemafile
