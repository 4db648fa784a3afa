// Package schemantic generates typed API clients from OpenAPI documents.
//
// schemantic parses an OpenAPI 3.x document, resolves its schema references,
// and synthesizes a registry of target-language type declarations plus a flat
// list of endpoint descriptors. Emitters render these into TypeScript (type
// declarations, a typed fetch client, and optional hooks) or Go type
// declarations.
//
// # Packages
//
//   - parser: document model, loading, and $ref resolution
//   - synth: the schema resolution and type synthesis engine
//   - generator: the public generation API and code emitters
//
// # Quick Start
//
// Generate a TypeScript client from a document:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithTarget(generator.TargetTypeScript),
//	    generator.WithClient(true),
//	)
//
// Or drive the engine directly:
//
//	parsed, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	run := synth.NewRun(parsed.Document, synth.Config{})
//	reg, err := run.SynthesizeDocument()
package schemantic
