package synth

import (
	"github.com/GGROM1/schemantic-sub000/parser"
)

// ExprKind discriminates the variants of a TypeExpr.
type ExprKind int

const (
	// ExprUnknown is the permissive fallback for unresolvable or
	// loosely-specified schemas.
	ExprUnknown ExprKind = iota
	// ExprPrimitive is a target-neutral primitive (see primitive names).
	ExprPrimitive
	// ExprNamed references a named type by its canonical name.
	ExprNamed
	// ExprLiteral is a single-value literal type.
	ExprLiteral
	// ExprArray is a sequence of Elem.
	ExprArray
	// ExprMap is a string-keyed map of Elem.
	ExprMap
	// ExprUnion is a union over Members.
	ExprUnion
	// ExprObject is an inline anonymous object with Fields.
	ExprObject
	// ExprVoid is the absence of a value (e.g., a no-content response).
	ExprVoid
)

// Target-neutral primitive names carried by ExprPrimitive.
const (
	PrimString  = "string"
	PrimNumber  = "number"
	PrimInteger = "integer"
	PrimBoolean = "boolean"
	PrimNull    = "null"
)

// TypeExpr is a structural type description. It is the engine's output
// currency: emitters render it into target-language syntax.
type TypeExpr struct {
	Kind ExprKind
	// Name holds the referenced type name (ExprNamed) or the primitive
	// name (ExprPrimitive).
	Name string
	// Literal holds the constant value for ExprLiteral.
	Literal any
	// Elem is the element type for ExprArray and ExprMap.
	Elem *TypeExpr
	// Members are the union alternatives for ExprUnion.
	Members []*TypeExpr
	// Fields are the properties for ExprObject, in document order.
	Fields []Field
}

// Field is one property of an object type. Optionality is tri-state at the
// value level: a required field is always present, an optional field may be
// present or absent. Emitters encode absence with the target's missing
// marker.
type Field struct {
	// Name is the normalized field name
	Name string
	// RawName is the property name as declared in the document
	RawName string
	// Type is the lowered field type
	Type *TypeExpr
	// Required is true when the property is in the schema's required set
	Required bool
	// Description is the property description, if any
	Description string
}

// Unknown returns the unknown placeholder expression.
func Unknown() *TypeExpr { return &TypeExpr{Kind: ExprUnknown} }

// Void returns the void expression.
func Void() *TypeExpr { return &TypeExpr{Kind: ExprVoid} }

// Primitive returns a primitive expression for name.
func Primitive(name string) *TypeExpr { return &TypeExpr{Kind: ExprPrimitive, Name: name} }

// Named returns a reference expression to the named type.
func Named(name string) *TypeExpr { return &TypeExpr{Kind: ExprNamed, Name: name} }

// Kind classifies a SynthesizedType.
type Kind int

const (
	// KindObject is a record type with fields and an optional base.
	KindObject Kind = iota
	// KindEnum is a tagged enumeration over literal values.
	KindEnum
	// KindAlias is a named alias for an arbitrary type expression.
	KindAlias
	// KindUnion is a named union type.
	KindUnion
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindEnum:
		return "enumeration"
	case KindAlias:
		return "primitive-alias"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// EnumMember is one member of an enumeration: a deterministic identifier key
// paired with the literal value it stands for.
type EnumMember struct {
	Key   string
	Value any
}

// SynthesizedType is the engine's output unit: one named target type.
// It is created once per named schema during a generation pass and is
// immutable afterward, except for emitter-level post-processing.
type SynthesizedType struct {
	// Name is the canonical type name after naming policy.
	Name string
	// Kind discriminates the body fields below.
	Kind Kind
	// Base is the extended base type name for allOf inheritance (objects).
	Base string
	// Fields are the object's own properties, in document order.
	Fields []Field
	// Members are the enumeration members.
	Members []EnumMember
	// CompanionAlias names the literal-union alias generated alongside an
	// enumeration, so call sites can accept either form.
	CompanionAlias string
	// Alias is the aliased expression for KindAlias and KindUnion.
	Alias *TypeExpr
	// Description is the schema description, if any.
	Description string
	// Deps lists the named types this type references, in first-reference
	// order with no duplicates.
	Deps []string
	// Source is the originating schema node.
	Source *parser.Schema
}

// Registry is an arena of synthesized types keyed by canonical name.
// Types hold lightweight name references to one another rather than nested
// ownership, which keeps cyclic schema graphs representable.
type Registry struct {
	types []*SynthesizedType
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers t and returns its stable handle. Re-adding a name replaces
// the entry in place, keeping the original emission position.
func (r *Registry) Add(t *SynthesizedType) int {
	if i, ok := r.index[t.Name]; ok {
		r.types[i] = t
		return i
	}
	r.types = append(r.types, t)
	r.index[t.Name] = len(r.types) - 1
	return len(r.types) - 1
}

// Get returns the type registered under name.
func (r *Registry) Get(name string) (*SynthesizedType, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.types[i], true
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// At returns the type at handle i.
func (r *Registry) At(i int) *SynthesizedType {
	return r.types[i]
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.types))
	for i, t := range r.types {
		names[i] = t.Name
	}
	return names
}
