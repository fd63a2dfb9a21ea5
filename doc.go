// Package crdtools provides tools for working with declaratively versioned record types.
//
// crdtools models a record type whose shape evolves across an ordered list of
// schema versions (v1alpha1, v1beta1, v1, ...). Item lifecycles are declared
// once per item (added, changed, deprecated), and the library derives the
// concrete shape at every version, validates the declarations, generates
// conversion steps between adjacent versions, and serves conversion over the
// Kubernetes ConversionReview webhook protocol.
//
// # Overview
//
// The library consists of these primary packages:
//
//   - version: parse, order, and register schema versions
//   - schema: item lifecycle declarations, validation, changeset projection, shape materialization
//   - convert: conversion step generation and multi-hop object conversion
//   - merger: merged multi-version schema documents
//   - generator: Go source generation for per-version types and converters
//   - webhook: HTTP ConversionReview webhook service
//   - schemafile: YAML schema file loading
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/crdtools/crdtools
//
// # Quick Start
//
// Declare versions and items, then build a conversion pipeline:
//
//	import (
//		"github.com/crdtools/crdtools/convert"
//		"github.com/crdtools/crdtools/schema"
//		"github.com/crdtools/crdtools/version"
//	)
//
//	reg := version.MustRegister([]version.Definition{
//		{Version: version.MustParse("v1alpha1")},
//		{Version: version.MustParse("v1")},
//	})
//	items := []schema.Item{
//		{Name: "name", Type: "string"},
//		{Name: "age", Type: "u16", Added: &schema.Added{Since: version.MustParse("v1")}},
//	}
//	pipeline, err := convert.NewPipeline(reg, items)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := pipeline.Convert(obj, version.MustParse("v1alpha1"), version.MustParse("v1"))
//
// Load a schema from YAML instead:
//
//	import "github.com/crdtools/crdtools/schemafile"
//
//	result, err := schemafile.Load("person.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Validation.Valid {
//		log.Fatal(result.Validation.Err())
//	}
//
// Serve conversion as a webhook:
//
//	import "github.com/crdtools/crdtools/webhook"
//
//	svc := webhook.NewService(pipeline, "example.crdtools.dev", "Person")
//	http.Handle("/convert", webhook.NewHandler(svc))
//
// # Command Line
//
// The crdtools command wraps the library: validate, shapes, generate, merge,
// convert, serve, and mcp subcommands. Run 'crdtools help' for usage.
package crdtools
