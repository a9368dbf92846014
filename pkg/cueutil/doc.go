// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and
// decodes them into Go values.
//
// Parsing follows three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate and decode
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[map[string]any](
//	    schema,
//	    data,
//	    "#Config",
//	    cueutil.WithFilename("bundler.cue"),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the CUE path of the offending field in JSON-path notation.
package cueutil
