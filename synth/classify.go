package synth

import "github.com/GGROM1/schemantic-sub000/parser"

// NodeClass is the shape classification of a schema node. Each node is
// classified exactly once and then lowered by an exhaustive switch, so an
// unhandled shape is impossible by construction: anything unrecognized is
// ClassUnknown, a soft outcome rather than an error.
type NodeClass int

const (
	// ClassUnknown is a node with no recognizable shape.
	ClassUnknown NodeClass = iota
	// ClassEnumeration is a node with a non-empty literal-value list.
	ClassEnumeration
	// ClassComposite is an object-shaped node or one driven by
	// composition keywords or array/map structure.
	ClassComposite
	// ClassPrimitive is a scalar kind or a constant value.
	ClassPrimitive
)

// String returns the string representation of the class.
func (c NodeClass) String() string {
	switch c {
	case ClassEnumeration:
		return "enumeration"
	case ClassComposite:
		return "composite"
	case ClassPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// scalarTypes are the schema type keywords lowered by the primitive path.
var scalarTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"integer": true,
	"boolean": true,
	"null":    true,
}

// Classify determines the lowering path for a schema node. Precedence
// mirrors strategy priority: an enum list wins over object shape, which
// wins over scalar kind.
func Classify(s *parser.Schema) NodeClass {
	if s == nil {
		return ClassUnknown
	}
	if len(s.Enum) > 0 {
		return ClassEnumeration
	}
	if s.Type == "object" || s.HasProperties() || s.HasComposition() ||
		s.AdditionalProperties != nil || s.Type == "array" || s.Items != nil {
		return ClassComposite
	}
	if scalarTypes[s.Type] || s.Const != nil {
		return ClassPrimitive
	}
	return ClassUnknown
}
