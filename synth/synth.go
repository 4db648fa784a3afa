package synth

import (
	"fmt"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/internal/naming"
	"github.com/GGROM1/schemantic-sub000/internal/severity"
	"github.com/GGROM1/schemantic-sub000/parser"
	"github.com/GGROM1/schemantic-sub000/scherrors"
)

// maxLowerDepth bounds inline lowering recursion. Named references do not
// recurse (they lower to a name handle), so only pathologically nested
// anonymous schemas can approach this.
const maxLowerDepth = 100

// Config carries the recognized generation options for one run.
type Config struct {
	// NamingConvention selects the casing for member names.
	NamingConvention Convention
	// TypePrefix is prepended verbatim to every canonical type name.
	TypePrefix string
	// TypeSuffix is appended verbatim to every canonical type name.
	TypeSuffix string
	// CustomTypeMappings maps a schema format or type keyword to a target
	// type name emitted verbatim (e.g., "date-time" -> "Date").
	CustomTypeMappings map[string]string
	// SchemaTransform, when set, may rewrite a schema node before the
	// engine synthesizes it. It must be pure: node in, node out.
	SchemaTransform func(*parser.Schema) *parser.Schema
	// Logger receives debug-level diagnostics. Defaults to NopLogger.
	Logger parser.Logger
}

// nodeState tracks the per-named-schema synthesis lifecycle.
type nodeState int

const (
	stateUnvisited nodeState = iota
	stateDispatched
	stateLowered
)

// Run owns all state for one generation pass: the resolver, the naming
// state, the type registry, the dependency tracker, and collected issues.
// A Run must not be shared across goroutines; create one Run per document.
type Run struct {
	doc      *parser.Document
	cfg      Config
	resolver *parser.RefResolver
	names    *NamingState
	registry *Registry
	deps     *DependencyTracker
	logger   parser.Logger

	// typeName maps component schema names to canonical type names.
	// Precomputed so cyclic references lower to a name handle without
	// re-entering synthesis.
	typeName map[string]string
	state    map[string]nodeState
	issued   []issues.Issue

	// unresolved flags an internal reference failure while lowering the
	// current named schema. The dependent type is dropped, the run
	// continues.
	unresolved bool
}

// NewRun creates a run over doc. The configuration is copied; the document
// is not, and must not be mutated during the run.
func NewRun(doc *parser.Document, cfg Config) *Run {
	if cfg.Logger == nil {
		cfg.Logger = parser.NopLogger{}
	}
	r := &Run{
		doc:      doc,
		cfg:      cfg,
		resolver: parser.NewRefResolver(doc),
		names:    NewNamingState(),
		registry: NewRegistry(),
		deps:     NewDependencyTracker(),
		logger:   cfg.Logger,
		typeName: make(map[string]string),
		state:    make(map[string]nodeState),
	}
	r.assignNames()
	return r
}

// assignNames precomputes canonical names for all named schemas so that
// references, including self-references, resolve to stable name handles.
// A schema whose key yields no identifier falls back to its title, then to
// a generated name from the family matching its classification.
func (r *Run) assignNames() {
	for _, name := range r.componentNames() {
		schema, _ := r.doc.Components.Schemas.Get(name)

		raw := name
		if naming.ToPascalCase(raw) == "" {
			if schema != nil && schema.Title != "" {
				raw = schema.Title
			} else {
				raw = r.names.Next(anonymousFamily(Classify(schema)))
				r.addIssue(issues.CodeAnonymousSchema, "components.schemas."+name,
					fmt.Sprintf("schema has no usable name; assigned %s", raw), severity.SeverityInfo, name)
			}
		}

		formatted := Format(raw, r.cfg.TypePrefix, r.cfg.TypeSuffix)
		// Distinct raw names can collapse to the same identifier
		// ("user-name" and "user_name"). Disambiguate numerically.
		candidate := formatted
		for i := 2; r.names.IsUsed(candidate); i++ {
			candidate = fmt.Sprintf("%s%d", formatted, i)
		}
		r.names.Reserve(candidate)
		r.typeName[name] = candidate
	}
}

// anonymousFamily picks the generated-name family for a schema class.
func anonymousFamily(class NodeClass) string {
	switch class {
	case ClassEnumeration:
		return FamilyEnum
	case ClassPrimitive:
		return FamilyPrimitive
	default:
		return FamilyType
	}
}

func (r *Run) componentNames() []string {
	if r.doc == nil || r.doc.Components == nil {
		return nil
	}
	return r.doc.Components.Schemas.Keys()
}

// TypeNameFor returns the canonical type name assigned to a component
// schema name.
func (r *Run) TypeNameFor(componentName string) (string, bool) {
	name, ok := r.typeName[componentName]
	return name, ok
}

// Issues returns the issues collected so far, in discovery order.
func (r *Run) Issues() []issues.Issue {
	return r.issued
}

// Registry returns the run's type registry.
func (r *Run) Registry() *Registry {
	return r.registry
}

// Dependencies returns the run's dependency tracker.
func (r *Run) Dependencies() *DependencyTracker {
	return r.deps
}

// SynthesizeDocument lowers every named component schema into the registry,
// in document order. Per-schema failures degrade or drop the single type;
// only a structurally unusable document fails the run.
func (r *Run) SynthesizeDocument() (*Registry, error) {
	if r.doc == nil {
		return nil, &scherrors.GenerationError{Target: "synth", Message: "no document to synthesize"}
	}
	for _, name := range r.componentNames() {
		r.synthesizeNamed(name)
	}
	return r.registry, nil
}

// synthesizeNamed lowers one named schema. Each schema moves through
// Unvisited -> Dispatched -> Lowered exactly once per run.
func (r *Run) synthesizeNamed(componentName string) {
	if r.state[componentName] != stateUnvisited {
		return
	}
	r.state[componentName] = stateDispatched

	schema, _ := r.doc.Components.Schemas.Get(componentName)
	schema = r.transform(schema)
	typeName := r.typeName[componentName]
	path := "components.schemas." + componentName

	r.unresolved = false
	st := r.lowerNamed(typeName, schema, path)
	if st != nil && !r.unresolved {
		st.Deps = r.deps.DepsOf(typeName)
		st.Source = schema
		r.registry.Add(st)
		r.logger.Debug("synthesized type", "name", st.Name, "kind", st.Kind.String(), "deps", len(st.Deps))
	}
	r.state[componentName] = stateLowered
}

func (r *Run) transform(schema *parser.Schema) *parser.Schema {
	if r.cfg.SchemaTransform == nil || schema == nil {
		return schema
	}
	if out := r.cfg.SchemaTransform(schema); out != nil {
		return out
	}
	return schema
}

// lowerNamed produces the SynthesizedType for a named schema, dispatching
// on its classification. Returns nil when the schema is a reference that
// cannot back a type of its own.
func (r *Run) lowerNamed(typeName string, schema *parser.Schema, path string) *SynthesizedType {
	// A named schema that is itself a bare reference becomes an alias.
	if schema.IsRef() {
		expr := r.lowerRef(typeName, schema.Ref, path, 0)
		return &SynthesizedType{Name: typeName, Kind: KindAlias, Alias: expr, Description: schema.Description}
	}

	switch Classify(schema) {
	case ClassEnumeration:
		return r.lowerEnumType(typeName, schema)
	case ClassComposite:
		return r.lowerCompositeType(typeName, schema, path)
	case ClassPrimitive:
		return &SynthesizedType{
			Name:        typeName,
			Kind:        KindAlias,
			Alias:       r.nullableWrap(schema, r.lowerPrimitive(schema)),
			Description: schemaDescription(schema),
		}
	default:
		r.addIssue(issues.CodeUnsupportedShape, path,
			"schema has no recognizable shape; lowered to unknown", severity.SeverityWarning, nil)
		return &SynthesizedType{Name: typeName, Kind: KindAlias, Alias: Unknown(), Description: schemaDescription(schema)}
	}
}

func (r *Run) addIssue(code, path, message string, sev severity.Severity, value any) {
	r.issued = append(r.issued, issues.Issue{
		Code:     code,
		Path:     path,
		Message:  message,
		Severity: sev,
		Value:    value,
	})
}

func schemaDescription(s *parser.Schema) string {
	if s == nil {
		return ""
	}
	return s.Description
}
