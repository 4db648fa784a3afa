package parser

import (
	"strconv"
	"strings"
)

// RefResolver answers local $ref lookups against a single loaded document.
//
// Only internal references (starting with "#/") are resolvable. Any other
// form (external files, URLs) reports not-found so callers can degrade the
// dependent type to unknown instead of failing the run. Resolution is a
// direct segment-by-segment traversal, so cost is O(depth) per call and
// independent of document size.
type RefResolver struct {
	doc *Document
}

// NewRefResolver creates a resolver over doc.
func NewRefResolver(doc *Document) *RefResolver {
	return &RefResolver{doc: doc}
}

// IsLocal reports whether ref is an internal reference.
func IsLocal(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// SchemaName extracts the component schema name from a reference of the
// form "#/components/schemas/Name". Returns "" for any other shape,
// including refs that traverse deeper than the named schema.
func SchemaName(ref string) string {
	const prefix = "#/components/schemas/"
	if !strings.HasPrefix(ref, prefix) {
		return ""
	}
	name := strings.TrimPrefix(ref, prefix)
	if name == "" || strings.Contains(name, "/") {
		return ""
	}
	return unescapeJSONPointer(name)
}

// Resolve resolves ref to a schema node. The second return value is false
// when the reference is external or does not resolve; resolution never
// mutates the document.
func (r *RefResolver) Resolve(ref string) (*Schema, bool) {
	if r == nil || r.doc == nil || !IsLocal(ref) {
		return nil, false
	}

	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	if len(segments) < 3 || segments[0] != "components" || segments[1] != "schemas" {
		return nil, false
	}
	if r.doc.Components == nil {
		return nil, false
	}

	name := unescapeJSONPointer(segments[2])
	schema, ok := r.doc.Components.Schemas.Get(name)
	if !ok || schema == nil {
		return nil, false
	}

	// Traverse any remaining segments into the schema structure.
	return traverseSchema(schema, segments[3:])
}

// traverseSchema walks nested segments below a named schema, e.g.
// "properties/address" or "items" or "allOf/0".
func traverseSchema(schema *Schema, segments []string) (*Schema, bool) {
	current := schema
	for i := 0; i < len(segments); i++ {
		if current == nil {
			return nil, false
		}
		switch seg := unescapeJSONPointer(segments[i]); seg {
		case "properties":
			if i+1 >= len(segments) {
				return nil, false
			}
			i++
			prop, ok := current.Properties.Get(unescapeJSONPointer(segments[i]))
			if !ok {
				return nil, false
			}
			current = prop
		case "items":
			current = current.Items
		case "additionalProperties":
			if current.AdditionalProperties == nil {
				return nil, false
			}
			current = current.AdditionalProperties.Schema
		case "allOf", "oneOf", "anyOf":
			if i+1 >= len(segments) {
				return nil, false
			}
			i++
			idx, err := strconv.Atoi(segments[i])
			if err != nil || idx < 0 {
				return nil, false
			}
			var list []*Schema
			switch seg {
			case "allOf":
				list = current.AllOf
			case "oneOf":
				list = current.OneOf
			case "anyOf":
				list = current.AnyOf
			}
			if idx >= len(list) {
				return nil, false
			}
			current = list[idx]
		default:
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
