// Package version provides parsing, ordering and registration of
// Kubernetes-style resource versions.
//
// Import path: github.com/crdtools/crdtools/version
//
// A [Version] follows the v<MAJOR>(alpha|beta)<NUMBER> format used by the
// Kubernetes API ("v1alpha1", "v1beta2", "v1"). Versions are strictly and
// totally ordered: v1alpha1 < v1alpha2 < v1beta1 < v1 < v2alpha1 < v2.
//
// A [Registry] is the validated, immutable, ascending list of versions a
// schema declares. Every other crdtools package treats the registry as the
// single time axis: lifecycle actions reference registry versions, changesets
// contain one entry per registry version, and conversion paths are contiguous
// slices of the registry.
//
// # Quick Start
//
//	reg, err := version.Register([]version.Definition{
//	    {Version: version.MustParse("v1alpha1")},
//	    {Version: version.MustParse("v1beta1"), Deprecated: true},
//	    {Version: version.MustParse("v1")},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(reg.Latest().Version) // v1
//
// Registration rejects empty input, duplicates, and descending declaration
// order; pass [WithAllowUnsorted] to accept unsorted input, which is then
// sorted stably. All violations found in one call are accumulated and
// returned together.
package version
