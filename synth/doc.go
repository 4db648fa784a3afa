// Package synth implements the schema resolution and type synthesis engine.
//
// The engine takes a parsed document and lowers every named component schema
// into a SynthesizedType: an object, an enumeration, a primitive alias, or a
// union. Nested anonymous schemas are lowered inline and never enter the
// named-type registry. A second pass walks the document's operations and
// produces EndpointDescriptors that reuse the same lowering path for
// parameters, request bodies, and responses.
//
// A Run owns all per-run state (naming counters, type registry, dependency
// tracker, collected issues), so independent runs are safe to execute
// concurrently. Within a run, synthesis is a deterministic
// function of the document and configuration.
//
//	run := synth.NewRun(doc, synth.Config{TypeSuffix: "Dto"})
//	registry, err := run.SynthesizeDocument()
//	endpoints, err := run.ExtractEndpoints()
//	for _, issue := range run.Issues() { ... }
package synth
