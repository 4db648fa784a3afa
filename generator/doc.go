// Package generator renders synthesized types and endpoints into target
// language source files.
//
// The generator runs the full pipeline: parse (unless given an already
// parsed document), synthesize the named types, extract the endpoints, and
// emit files for the selected target. TypeScript is the primary target and
// supports model types, a fetch client, and React Query hooks; the Go
// target emits model types formatted with goimports.
//
// # Basic Usage
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithTarget(generator.TargetTypeScript),
//	    generator.WithClient(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := result.WriteFiles("./gen"); err != nil {
//	    log.Fatal(err)
//	}
//
// Generation degrades rather than fails: unresolvable references,
// ambiguous compositions, and unsupported shapes are reported as Issues on
// the result while the remaining document still generates.
package generator
