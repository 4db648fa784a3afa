package synth

import (
	"fmt"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/internal/severity"
	"github.com/GGROM1/schemantic-sub000/parser"
)

// lowerRef lowers a $ref occurrence for the type named owner.
//
// A reference to a named component schema lowers to a name handle and is
// recorded as a dependency. A reference into a nested fragment lowers the
// resolved fragment inline. An unresolvable internal reference is fatal for
// the dependent type; an external reference degrades to unknown.
func (r *Run) lowerRef(owner, ref, path string, depth int) *TypeExpr {
	if name := parser.SchemaName(ref); name != "" {
		if typeName, ok := r.typeName[name]; ok {
			r.deps.Record(owner, typeName)
			return Named(typeName)
		}
	}

	if !parser.IsLocal(ref) {
		r.addIssue(issues.CodeUnresolvedReference, path,
			fmt.Sprintf("external reference %s is not resolvable; lowered to unknown", ref),
			severity.SeverityWarning, ref)
		return Unknown()
	}

	if resolved, ok := r.resolver.Resolve(ref); ok {
		// A nested fragment: lower it inline, it has no name of its own.
		return r.lowerExpr(owner, resolved, path, depth+1)
	}

	r.unresolved = true
	r.addIssue(issues.CodeUnresolvedReference, path,
		fmt.Sprintf("reference %s does not resolve", ref), severity.SeverityError, ref)
	return Unknown()
}

// lowerExpr lowers a schema node to an inline type expression. Anonymous
// sub-schemas never enter the named registry.
func (r *Run) lowerExpr(owner string, schema *parser.Schema, path string, depth int) *TypeExpr {
	if schema == nil {
		return Unknown()
	}
	if depth > maxLowerDepth {
		r.addIssue(issues.CodeUnsupportedShape, path,
			"schema nesting exceeds depth limit; lowered to unknown", severity.SeverityWarning, nil)
		return Unknown()
	}
	if schema.IsRef() {
		return r.nullableWrap(schema, r.lowerRef(owner, schema.Ref, path, depth))
	}

	var expr *TypeExpr
	switch Classify(schema) {
	case ClassEnumeration:
		expr = literalUnion(schema.Enum)
	case ClassComposite:
		expr = r.lowerCompositeExpr(owner, schema, path, depth)
	case ClassPrimitive:
		expr = r.lowerPrimitive(schema)
	default:
		r.addIssue(issues.CodeUnsupportedShape, path,
			"schema has no recognizable shape; lowered to unknown", severity.SeverityWarning, nil)
		expr = Unknown()
	}
	return r.nullableWrap(schema, expr)
}

// nullableWrap widens expr with null for OAS 3.0 nullable schemas.
func (r *Run) nullableWrap(schema *parser.Schema, expr *TypeExpr) *TypeExpr {
	if !schema.Nullable {
		return expr
	}
	return &TypeExpr{Kind: ExprUnion, Members: []*TypeExpr{expr, Primitive(PrimNull)}}
}

// literalUnion builds the union-of-literals expression for an enum list.
func literalUnion(values []any) *TypeExpr {
	members := make([]*TypeExpr, len(values))
	for i, v := range values {
		members[i] = &TypeExpr{Kind: ExprLiteral, Literal: v}
	}
	return &TypeExpr{Kind: ExprUnion, Members: members}
}

// lowerCompositeExpr lowers object-shaped and composition-driven nodes
// inline.
func (r *Run) lowerCompositeExpr(owner string, schema *parser.Schema, path string, depth int) *TypeExpr {
	switch {
	case len(schema.OneOf) > 0:
		return r.lowerUnionExpr(owner, schema.OneOf, path+".oneOf", depth)
	case len(schema.AnyOf) > 0:
		return r.lowerUnionExpr(owner, schema.AnyOf, path+".anyOf", depth)
	case len(schema.AllOf) > 0:
		return r.lowerInlineAllOf(owner, schema, path, depth)
	case schema.Type == "array" || schema.Items != nil:
		return &TypeExpr{Kind: ExprArray, Elem: r.lowerExpr(owner, schema.Items, path+".items", depth+1)}
	case schema.HasProperties():
		return &TypeExpr{Kind: ExprObject, Fields: r.lowerFields(owner, schema, path, depth)}
	default:
		// type: object with no properties is an open map. When
		// additionalProperties is a schema the values are constrained;
		// true or absent means arbitrary values.
		return r.lowerMapExpr(owner, schema, path, depth)
	}
}

func (r *Run) lowerUnionExpr(owner string, members []*parser.Schema, path string, depth int) *TypeExpr {
	lowered := make([]*TypeExpr, len(members))
	for i, m := range members {
		lowered[i] = r.lowerExpr(owner, m, fmt.Sprintf("%s[%d]", path, i), depth+1)
	}
	return &TypeExpr{Kind: ExprUnion, Members: lowered}
}

func (r *Run) lowerMapExpr(owner string, schema *parser.Schema, path string, depth int) *TypeExpr {
	if ap := schema.AdditionalProperties; ap != nil && ap.Schema != nil {
		return &TypeExpr{Kind: ExprMap, Elem: r.lowerExpr(owner, ap.Schema, path+".additionalProperties", depth+1)}
	}
	return &TypeExpr{Kind: ExprMap, Elem: Unknown()}
}

// lowerFields lowers a schema's properties in document order. Optionality
// is purely membership in the required set.
func (r *Run) lowerFields(owner string, schema *parser.Schema, path string, depth int) []Field {
	fields := make([]Field, 0, schema.Properties.Len())
	for _, raw := range schema.Properties.Keys() {
		prop, _ := schema.Properties.Get(raw)
		prop = r.transform(prop)
		fields = append(fields, Field{
			Name:        Normalize(raw, r.cfg.NamingConvention),
			RawName:     raw,
			Type:        r.lowerExpr(owner, prop, path+".properties."+raw, depth+1),
			Required:    schema.IsRequired(raw),
			Description: schemaDescription(prop),
		})
	}
	return fields
}

// lowerInlineAllOf flattens an anonymous allOf into a single inline object:
// every member's properties are merged, resolving references through the
// document. Named inheritance only applies to named schemas.
func (r *Run) lowerInlineAllOf(owner string, schema *parser.Schema, path string, depth int) *TypeExpr {
	merged := newFieldMerger()
	for i, member := range schema.AllOf {
		memberPath := fmt.Sprintf("%s.allOf[%d]", path, i)
		resolved := r.resolveFragment(member, memberPath)
		if resolved == nil {
			continue
		}
		merged.addAll(r.lowerFields(owner, resolved, memberPath, depth+1), resolved.Required)
	}
	if schema.HasProperties() {
		merged.addAll(r.lowerFields(owner, schema, path, depth), schema.Required)
	}
	return &TypeExpr{Kind: ExprObject, Fields: merged.fields()}
}

// resolveFragment resolves a composition member to a concrete node,
// following a reference if present. Unresolvable members degrade to nil.
func (r *Run) resolveFragment(member *parser.Schema, path string) *parser.Schema {
	if member == nil {
		return nil
	}
	if !member.IsRef() {
		return member
	}
	if resolved, ok := r.resolver.Resolve(member.Ref); ok {
		return resolved
	}
	if parser.IsLocal(member.Ref) {
		r.unresolved = true
		r.addIssue(issues.CodeUnresolvedReference, path,
			fmt.Sprintf("reference %s does not resolve", member.Ref), severity.SeverityError, member.Ref)
	} else {
		r.addIssue(issues.CodeUnresolvedReference, path,
			fmt.Sprintf("external reference %s is not resolvable; member skipped", member.Ref),
			severity.SeverityWarning, member.Ref)
	}
	return nil
}

// lowerEnumType synthesizes an enumeration plus its companion literal-union
// alias. Member keys are deterministic and collision-free: a positional
// collision falls back to VALUE_<index>, itself disambiguated numerically
// when another member already holds that key.
func (r *Run) lowerEnumType(typeName string, schema *parser.Schema) *SynthesizedType {
	members := make([]EnumMember, 0, len(schema.Enum))
	seen := make(map[string]bool, len(schema.Enum))
	for i, v := range schema.Enum {
		key := enumKey(v, i)
		if seen[key] {
			key = fmt.Sprintf("VALUE_%d", i)
			for n := 2; seen[key]; n++ {
				key = fmt.Sprintf("VALUE_%d_%d", i, n)
			}
		}
		seen[key] = true
		members = append(members, EnumMember{Key: key, Value: v})
	}

	companion := typeName + "Value"
	for i := 2; r.names.IsUsed(companion); i++ {
		companion = fmt.Sprintf("%sValue%d", typeName, i)
	}
	r.names.Reserve(companion)

	r.registry.Add(&SynthesizedType{
		Name:  companion,
		Kind:  KindUnion,
		Alias: literalUnion(schema.Enum),
	})

	return &SynthesizedType{
		Name:           typeName,
		Kind:           KindEnum,
		Members:        members,
		CompanionAlias: companion,
		Description:    schemaDescription(schema),
	}
}

// lowerCompositeType synthesizes a named composite schema: an object, a
// union, or an alias for array and map shapes.
func (r *Run) lowerCompositeType(typeName string, schema *parser.Schema, path string) *SynthesizedType {
	switch {
	case len(schema.OneOf) > 0:
		return &SynthesizedType{
			Name:        typeName,
			Kind:        KindUnion,
			Alias:       r.lowerUnionExpr(typeName, schema.OneOf, path+".oneOf", 0),
			Description: schemaDescription(schema),
		}
	case len(schema.AnyOf) > 0:
		return &SynthesizedType{
			Name:        typeName,
			Kind:        KindUnion,
			Alias:       r.lowerUnionExpr(typeName, schema.AnyOf, path+".anyOf", 0),
			Description: schemaDescription(schema),
		}
	case len(schema.AllOf) > 0:
		return r.lowerNamedAllOf(typeName, schema, path)
	case schema.Type == "array" || schema.Items != nil:
		return &SynthesizedType{
			Name:        typeName,
			Kind:        KindAlias,
			Alias:       &TypeExpr{Kind: ExprArray, Elem: r.lowerExpr(typeName, schema.Items, path+".items", 1)},
			Description: schemaDescription(schema),
		}
	case schema.HasProperties():
		return &SynthesizedType{
			Name:        typeName,
			Kind:        KindObject,
			Fields:      r.lowerFields(typeName, schema, path, 0),
			Description: schemaDescription(schema),
		}
	default:
		return &SynthesizedType{
			Name:        typeName,
			Kind:        KindAlias,
			Alias:       r.lowerMapExpr(typeName, schema, path, 0),
			Description: schemaDescription(schema),
		}
	}
}

// lowerNamedAllOf synthesizes single-base inheritance: the first bare
// reference member becomes the base type, every other member contributes
// properties. More than one reference member is ambiguous; the first wins
// and the rest are merged as property sources.
func (r *Run) lowerNamedAllOf(typeName string, schema *parser.Schema, path string) *SynthesizedType {
	var base string
	refCount := 0
	merged := newFieldMerger()

	for i, member := range schema.AllOf {
		memberPath := fmt.Sprintf("%s.allOf[%d]", path, i)
		if member.IsRef() {
			refCount++
			if base == "" {
				if name := parser.SchemaName(member.Ref); name != "" {
					if baseName, ok := r.typeName[name]; ok {
						base = baseName
						r.deps.Record(typeName, baseName)
						continue
					}
				}
			}
			// Not the base: merge the referenced schema's properties.
			resolved := r.resolveFragment(member, memberPath)
			if resolved != nil {
				merged.addAll(r.lowerFields(typeName, resolved, memberPath, 1), resolved.Required)
			}
			continue
		}
		merged.addAll(r.lowerFields(typeName, member, memberPath, 1), member.Required)
	}

	if refCount > 1 {
		r.addIssue(issues.CodeAmbiguousComposition, path,
			fmt.Sprintf("allOf has %d reference members; first is the base, the rest merge as property sources", refCount),
			severity.SeverityWarning, nil)
	}

	// Sibling properties declared next to allOf merge last.
	if schema.HasProperties() {
		merged.addAll(r.lowerFields(typeName, schema, path, 0), schema.Required)
	}

	return &SynthesizedType{
		Name:        typeName,
		Kind:        KindObject,
		Base:        base,
		Fields:      merged.fields(),
		Description: schemaDescription(schema),
	}
}

// lowerPrimitive lowers scalar kinds and constants. Custom type mappings
// take precedence, keyed by format first and type keyword second; the
// mapped name is emitted verbatim and carries no dependency edge.
func (r *Run) lowerPrimitive(schema *parser.Schema) *TypeExpr {
	if schema.Const != nil {
		return &TypeExpr{Kind: ExprLiteral, Literal: schema.Const}
	}
	if mapped, ok := r.cfg.CustomTypeMappings[schema.Format]; ok && schema.Format != "" {
		return Named(mapped)
	}
	if mapped, ok := r.cfg.CustomTypeMappings[schema.Type]; ok {
		return Named(mapped)
	}
	switch schema.Type {
	case "string":
		// Formats like date-time refine documentation, not the wire type.
		return Primitive(PrimString)
	case "number":
		return Primitive(PrimNumber)
	case "integer":
		return Primitive(PrimInteger)
	case "boolean":
		return Primitive(PrimBoolean)
	case "null":
		return Primitive(PrimNull)
	default:
		return Unknown()
	}
}

// fieldMerger merges property sets with last-writer-wins values, keeping
// the position of a name's first occurrence and unioning required sets.
type fieldMerger struct {
	order    []string
	byName   map[string]Field
	required map[string]bool
}

func newFieldMerger() *fieldMerger {
	return &fieldMerger{
		byName:   make(map[string]Field),
		required: make(map[string]bool),
	}
}

func (m *fieldMerger) addAll(fields []Field, required []string) {
	for _, f := range fields {
		if _, exists := m.byName[f.RawName]; !exists {
			m.order = append(m.order, f.RawName)
		}
		m.byName[f.RawName] = f
	}
	for _, name := range required {
		m.required[name] = true
	}
}

func (m *fieldMerger) fields() []Field {
	out := make([]Field, 0, len(m.order))
	for _, name := range m.order {
		f := m.byName[name]
		f.Required = f.Required || m.required[name]
		out = append(out, f)
	}
	return out
}
