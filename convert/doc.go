// Package convert generates and applies object conversions between the
// declared versions of a record type.
//
// A Pipeline ties together the version registry, the items' projected
// changesets, and one generated conversion step per adjacent version pair.
// Upgrade steps are derived automatically from the changesets; downgrade
// steps must be registered by the caller, since synthesizing removed fields
// has no canonical inverse.
//
// # Quick Start
//
// Build a pipeline and convert an object to the latest version:
//
//	reg := version.MustRegister([]version.Definition{
//		{Version: version.MustParse("v1alpha1")},
//		{Version: version.MustParse("v1beta1")},
//		{Version: version.MustParse("v1")},
//	})
//	p, err := convert.NewPipeline(reg, items)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := p.Convert(obj, version.MustParse("v1alpha1"), reg.Latest().Version)
//
// Conversion folds the resolved path one hop at a time; converting from
// version i to version i+2 is exactly the i to i+1 step followed by the
// i+1 to i+2 step. An object already at the desired version passes through
// unchanged.
//
// # Type Changes
//
// A changed item whose type differs from the previous version needs a value
// conversion. Built-in conversions cover the numeric widenings (for example
// u16 to usize, or int32 to float64); anything else requires an upgrade
// hook on the Changed action. A type change with neither is a generation
// error carrying vererrors.ErrUnconvertibleTypeChange.
//
// # Downgrades
//
// Register hand-written downgrade steps with WithDowngradeStep, or derive
// them from declared downgrade hooks with GenerateDowngrade. By default a
// missing downgrade step surfaces when a downgrade path is resolved;
// WithEagerDowngradeCheck moves that failure to pipeline construction.
package convert
