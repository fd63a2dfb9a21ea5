// Package vererrors provides structured error types for the crdtools library.
//
// Import path: github.com/crdtools/crdtools/vererrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides four core error types:
//
//   - [RegistryError]: version registry violations (empty input, duplicates, ordering)
//   - [LifecycleError]: invalid lifecycle action combinations on a single item
//   - [GenerateError]: converter generation failures between adjacent versions
//   - [ConversionError]: runtime conversion failures attributed to a specific object
//
// # Sentinel Errors
//
// Build-time sentinels carried by [RegistryError] and [LifecycleError]:
//
//   - [ErrVersionParse], [ErrEmptyRegistry], [ErrDuplicateVersion], [ErrUnsortedVersions]
//   - [ErrActionVersionNotDeclared], [ErrConflictingActions], [ErrOutOfOrderActions]
//   - [ErrNamingConvention], [ErrMisplacedConversionHook], [ErrUnconvertibleTypeChange]
//
// Runtime sentinels carried by [ConversionError]:
//
//   - [ErrUnknownAPIVersion], [ErrWrongKind], [ErrDeserialize], [ErrSerialize]
//   - [ErrNoDowngradePath]
//
// All build-time validation in crdtools accumulates errors rather than failing
// fast: a single validation pass surfaces every problem found. Runtime
// conversion errors always name the object and the conversion step that failed.
package vererrors
