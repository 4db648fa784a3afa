// Package parser provides the document model and loading for OpenAPI 3.x
// documents, plus local $ref resolution.
//
// The model preserves document order for schemas, properties, paths, and
// responses so downstream synthesis is deterministic: two parses of the same
// bytes produce the same traversal order.
//
// Parse a document:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//	    // run-level failure: nothing was parsed
//	}
//	doc := result.Document
//
// Resolve a reference:
//
//	r := parser.NewRefResolver(doc)
//	schema, ok := r.Resolve("#/components/schemas/Pet")
package parser
