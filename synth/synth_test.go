package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/internal/severity"
	"github.com/GGROM1/schemantic-sub000/parser"
)

func mustSchema(t *testing.T, src string) *parser.Schema {
	t.Helper()
	var s parser.Schema
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	return &s
}

func mustDocument(t *testing.T, src string) *parser.Document {
	t.Helper()
	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(src)))
	require.NoError(t, err)
	return result.Document
}

// docWithSchemas wraps a components.schemas block into a minimal document.
func docWithSchemas(t *testing.T, schemas string) *parser.Document {
	t.Helper()
	return mustDocument(t, `
openapi: "3.0.3"
info:
  title: Test
  version: "1.0.0"
paths: {}
components:
  schemas:
`+indent(schemas, "    "))
}

func indent(s, prefix string) string {
	out := ""
	for _, line := range splitLines(s) {
		if line == "" {
			out += "\n"
			continue
		}
		out += prefix + line + "\n"
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func runOver(t *testing.T, schemas string, cfg Config) *Run {
	t.Helper()
	r := NewRun(docWithSchemas(t, schemas), cfg)
	_, err := r.SynthesizeDocument()
	require.NoError(t, err)
	return r
}

func issueCodes(r *Run) []string {
	var codes []string
	for _, iss := range r.Issues() {
		codes = append(codes, iss.Code)
	}
	return codes
}

func TestSynthesizeObject(t *testing.T) {
	r := runOver(t, `
User:
  type: object
  description: A registered user.
  properties:
    id:
      type: string
    display_name:
      type: string
      description: Shown in the UI.
    age:
      type: integer
  required: [id]
`, Config{})

	st, ok := r.Registry().Get("User")
	require.True(t, ok)
	assert.Equal(t, KindObject, st.Kind)
	assert.Equal(t, "A registered user.", st.Description)
	require.Len(t, st.Fields, 3)

	// Document order and the configured (default lower-camel) convention.
	assert.Equal(t, "id", st.Fields[0].Name)
	assert.Equal(t, "displayName", st.Fields[1].Name)
	assert.Equal(t, "display_name", st.Fields[1].RawName)
	assert.Equal(t, "age", st.Fields[2].Name)

	// Optionality is membership in the required set, nothing else.
	assert.True(t, st.Fields[0].Required)
	assert.False(t, st.Fields[1].Required)
	assert.False(t, st.Fields[2].Required)

	assert.Equal(t, ExprPrimitive, st.Fields[0].Type.Kind)
	assert.Equal(t, PrimString, st.Fields[0].Type.Name)
	assert.Equal(t, PrimInteger, st.Fields[2].Type.Name)
	assert.Equal(t, "Shown in the UI.", st.Fields[1].Description)
	assert.Empty(t, issueCodes(r))
}

func TestSynthesizeEnumWithCompanion(t *testing.T) {
	r := runOver(t, `
Status:
  type: string
  enum: [active, inactive, not-found]
`, Config{})

	st, ok := r.Registry().Get("Status")
	require.True(t, ok)
	assert.Equal(t, KindEnum, st.Kind)
	require.Len(t, st.Members, 3)
	assert.Equal(t, "ACTIVE", st.Members[0].Key)
	assert.Equal(t, "INACTIVE", st.Members[1].Key)
	assert.Equal(t, "NOT_FOUND", st.Members[2].Key)
	assert.Equal(t, "active", st.Members[0].Value)

	assert.Equal(t, "StatusValue", st.CompanionAlias)
	companion, ok := r.Registry().Get("StatusValue")
	require.True(t, ok)
	assert.Equal(t, KindUnion, companion.Kind)
	require.Len(t, companion.Alias.Members, 3)
	assert.Equal(t, ExprLiteral, companion.Alias.Members[0].Kind)
	assert.Equal(t, "active", companion.Alias.Members[0].Literal)
}

// Pathological enum values still produce distinct valid keys.
func TestSynthesizeEnumKeyCollisions(t *testing.T) {
	r := runOver(t, `
Weird:
  enum: ["", "a b", "a b"]
`, Config{})

	st, ok := r.Registry().Get("Weird")
	require.True(t, ok)
	require.Len(t, st.Members, 3)
	assert.Equal(t, "VALUE_0", st.Members[0].Key)
	assert.Equal(t, "A_B", st.Members[1].Key)
	assert.Equal(t, "VALUE_2", st.Members[2].Key)
}

func TestSynthesizeEnumKeyFallbackCollisions(t *testing.T) {
	r := runOver(t, `
Tricky:
  enum: ["VALUE_2", "x y", "x y"]
Doubled:
  enum: [1, 1]
`, Config{})

	// A member whose positional fallback key is already taken by an earlier
	// member still gets a distinct key.
	st, ok := r.Registry().Get("Tricky")
	require.True(t, ok)
	require.Len(t, st.Members, 3)
	assert.Equal(t, "VALUE_2", st.Members[0].Key)
	assert.Equal(t, "X_Y", st.Members[1].Key)
	assert.Equal(t, "VALUE_2_2", st.Members[2].Key)

	st, ok = r.Registry().Get("Doubled")
	require.True(t, ok)
	require.Len(t, st.Members, 2)
	assert.Equal(t, "VALUE_1", st.Members[0].Key)
	assert.Equal(t, "VALUE_1_2", st.Members[1].Key)
}

func TestSynthesizeAllOfSingleBase(t *testing.T) {
	r := runOver(t, `
Animal:
  type: object
  properties:
    name:
      type: string
  required: [name]
Dog:
  allOf:
    - $ref: '#/components/schemas/Animal'
    - type: object
      properties:
        breed:
          type: string
      required: [breed]
`, Config{})

	st, ok := r.Registry().Get("Dog")
	require.True(t, ok)
	assert.Equal(t, KindObject, st.Kind)
	assert.Equal(t, "Animal", st.Base)
	require.Len(t, st.Fields, 1)
	assert.Equal(t, "breed", st.Fields[0].Name)
	assert.True(t, st.Fields[0].Required)
	assert.Equal(t, []string{"Animal"}, st.Deps)
	assert.NotContains(t, issueCodes(r), issues.CodeAmbiguousComposition)
}

// The first reference member wins as base; the rest merge as property
// sources, with a warning.
func TestSynthesizeAllOfMultipleRefs(t *testing.T) {
	r := runOver(t, `
Named:
  type: object
  properties:
    name:
      type: string
Aged:
  type: object
  properties:
    age:
      type: integer
Person:
  allOf:
    - $ref: '#/components/schemas/Named'
    - $ref: '#/components/schemas/Aged'
`, Config{})

	st, ok := r.Registry().Get("Person")
	require.True(t, ok)
	assert.Equal(t, "Named", st.Base)
	require.Len(t, st.Fields, 1)
	assert.Equal(t, "age", st.Fields[0].Name)
	assert.Contains(t, issueCodes(r), issues.CodeAmbiguousComposition)
}

// Sibling properties declared next to allOf override merged ones.
func TestSynthesizeAllOfSiblingOverride(t *testing.T) {
	r := runOver(t, `
Base:
  type: object
  properties:
    id:
      type: string
Override:
  allOf:
    - type: object
      properties:
        kind:
          type: string
  properties:
    kind:
      type: integer
`, Config{})

	st, ok := r.Registry().Get("Override")
	require.True(t, ok)
	require.Len(t, st.Fields, 1)
	assert.Equal(t, PrimInteger, st.Fields[0].Type.Name)
}

func TestSynthesizeCycleTolerance(t *testing.T) {
	r := runOver(t, `
Category:
  type: object
  properties:
    name:
      type: string
    parent:
      $ref: '#/components/schemas/Category'
`, Config{})

	st, ok := r.Registry().Get("Category")
	require.True(t, ok)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, ExprNamed, st.Fields[1].Type.Kind)
	assert.Equal(t, "Category", st.Fields[1].Type.Name)
	assert.Equal(t, []string{"Category"}, st.Deps)
}

func TestSynthesizeMutualCycle(t *testing.T) {
	r := runOver(t, `
Node:
  type: object
  properties:
    edges:
      type: array
      items:
        $ref: '#/components/schemas/Edge'
Edge:
  type: object
  properties:
    target:
      $ref: '#/components/schemas/Node'
`, Config{})

	node, ok := r.Registry().Get("Node")
	require.True(t, ok)
	assert.Equal(t, []string{"Edge"}, node.Deps)
	assert.Equal(t, ExprArray, node.Fields[0].Type.Kind)
	assert.Equal(t, "Edge", node.Fields[0].Type.Elem.Name)

	edge, ok := r.Registry().Get("Edge")
	require.True(t, ok)
	assert.Equal(t, []string{"Node"}, edge.Deps)
}

func TestSynthesizeUnion(t *testing.T) {
	r := runOver(t, `
Cat:
  type: object
  properties:
    meow:
      type: boolean
Dog:
  type: object
  properties:
    bark:
      type: boolean
Pet:
  oneOf:
    - $ref: '#/components/schemas/Cat'
    - $ref: '#/components/schemas/Dog'
`, Config{})

	st, ok := r.Registry().Get("Pet")
	require.True(t, ok)
	assert.Equal(t, KindUnion, st.Kind)
	require.Len(t, st.Alias.Members, 2)
	assert.Equal(t, "Cat", st.Alias.Members[0].Name)
	assert.Equal(t, "Dog", st.Alias.Members[1].Name)
	assert.Equal(t, []string{"Cat", "Dog"}, st.Deps)
}

func TestSynthesizeArrayAndMapAliases(t *testing.T) {
	r := runOver(t, `
Tags:
  type: array
  items:
    type: string
Labels:
  type: object
  additionalProperties:
    type: string
Anything:
  type: object
  additionalProperties: true
`, Config{})

	tags, ok := r.Registry().Get("Tags")
	require.True(t, ok)
	assert.Equal(t, KindAlias, tags.Kind)
	assert.Equal(t, ExprArray, tags.Alias.Kind)
	assert.Equal(t, PrimString, tags.Alias.Elem.Name)

	labels, ok := r.Registry().Get("Labels")
	require.True(t, ok)
	assert.Equal(t, ExprMap, labels.Alias.Kind)
	assert.Equal(t, PrimString, labels.Alias.Elem.Name)

	anything, ok := r.Registry().Get("Anything")
	require.True(t, ok)
	assert.Equal(t, ExprMap, anything.Alias.Kind)
	assert.Equal(t, ExprUnknown, anything.Alias.Elem.Kind)
}

func TestSynthesizePrimitiveAlias(t *testing.T) {
	r := runOver(t, `
UserID:
  type: string
  format: uuid
Nullable:
  type: string
  nullable: true
`, Config{})

	id, ok := r.Registry().Get("UserID")
	require.True(t, ok)
	assert.Equal(t, KindAlias, id.Kind)
	assert.Equal(t, PrimString, id.Alias.Name)

	n, ok := r.Registry().Get("Nullable")
	require.True(t, ok)
	require.Equal(t, ExprUnion, n.Alias.Kind)
	require.Len(t, n.Alias.Members, 2)
	assert.Equal(t, PrimString, n.Alias.Members[0].Name)
	assert.Equal(t, PrimNull, n.Alias.Members[1].Name)
}

func TestSynthesizeNullableProperty(t *testing.T) {
	r := runOver(t, `
User:
  type: object
  properties:
    nickname:
      type: string
      nullable: true
`, Config{})

	st, _ := r.Registry().Get("User")
	require.Len(t, st.Fields, 1)
	expr := st.Fields[0].Type
	require.Equal(t, ExprUnion, expr.Kind)
	assert.Equal(t, PrimNull, expr.Members[1].Name)
}

func TestSynthesizeCustomTypeMappings(t *testing.T) {
	r := runOver(t, `
Event:
  type: object
  properties:
    at:
      type: string
      format: date-time
    count:
      type: integer
`, Config{CustomTypeMappings: map[string]string{
		"date-time": "Date",
		"integer":   "bigint",
	}})

	st, _ := r.Registry().Get("Event")
	require.Len(t, st.Fields, 2)
	assert.Equal(t, ExprNamed, st.Fields[0].Type.Kind)
	assert.Equal(t, "Date", st.Fields[0].Type.Name)
	assert.Equal(t, "bigint", st.Fields[1].Type.Name)
	// Mapped names are emitted verbatim, not tracked as dependencies.
	assert.Empty(t, st.Deps)
}

func TestSynthesizeUnresolvedInternalRefDropsType(t *testing.T) {
	r := runOver(t, `
Good:
  type: object
  properties:
    id:
      type: string
Bad:
  type: object
  properties:
    other:
      $ref: '#/components/schemas/Missing'
`, Config{})

	assert.True(t, r.Registry().Contains("Good"))
	assert.False(t, r.Registry().Contains("Bad"))

	var found bool
	for _, iss := range r.Issues() {
		if iss.Code == issues.CodeUnresolvedReference {
			found = true
			assert.Equal(t, severity.SeverityError, iss.Severity)
		}
	}
	assert.True(t, found)
}

// External references degrade the expression, not the type.
func TestSynthesizeExternalRefDegradesToUnknown(t *testing.T) {
	r := runOver(t, `
Linked:
  type: object
  properties:
    remote:
      $ref: 'https://example.com/common.yaml#/Thing'
`, Config{})

	st, ok := r.Registry().Get("Linked")
	require.True(t, ok)
	assert.Equal(t, ExprUnknown, st.Fields[0].Type.Kind)

	var sawWarning bool
	for _, iss := range r.Issues() {
		if iss.Code == issues.CodeUnresolvedReference && iss.Severity == severity.SeverityWarning {
			sawWarning = true
		}
	}
	assert.True(t, sawWarning)
}

func TestSynthesizeNamedRefAlias(t *testing.T) {
	r := runOver(t, `
User:
  type: object
  properties:
    id:
      type: string
Account:
  $ref: '#/components/schemas/User'
`, Config{})

	st, ok := r.Registry().Get("Account")
	require.True(t, ok)
	assert.Equal(t, KindAlias, st.Kind)
	assert.Equal(t, ExprNamed, st.Alias.Kind)
	assert.Equal(t, "User", st.Alias.Name)
	assert.Equal(t, []string{"User"}, st.Deps)
}

func TestSynthesizeAnonymousName(t *testing.T) {
	r := runOver(t, `
"!!!":
  type: object
  properties:
    id:
      type: string
"???":
  type: string
  enum: [a, b]
`, Config{})

	name, ok := r.TypeNameFor("!!!")
	require.True(t, ok)
	assert.Equal(t, "GeneratedType", name)
	assert.True(t, r.Registry().Contains("GeneratedType"))

	enumName, ok := r.TypeNameFor("???")
	require.True(t, ok)
	assert.Equal(t, "GeneratedEnum", enumName)

	var infos int
	for _, iss := range r.Issues() {
		if iss.Code == issues.CodeAnonymousSchema {
			infos++
			assert.Equal(t, severity.SeverityInfo, iss.Severity)
		}
	}
	assert.Equal(t, 2, infos)
}

// A degenerate key with a usable title takes the title instead of a
// generated name.
func TestSynthesizeTitleFallback(t *testing.T) {
	r := runOver(t, `
"@@@":
  title: Shopping Cart
  type: object
  properties:
    id:
      type: string
`, Config{})

	name, ok := r.TypeNameFor("@@@")
	require.True(t, ok)
	assert.Equal(t, "ShoppingCart", name)
}

// Distinct raw keys that collapse to the same identifier get numeric
// disambiguation in document order.
func TestSynthesizeNameCollision(t *testing.T) {
	r := runOver(t, `
user-name:
  type: object
  properties:
    a:
      type: string
user_name:
  type: object
  properties:
    b:
      type: string
`, Config{})

	first, _ := r.TypeNameFor("user-name")
	second, _ := r.TypeNameFor("user_name")
	assert.Equal(t, "UserName", first)
	assert.Equal(t, "UserName2", second)
	assert.True(t, r.Registry().Contains("UserName"))
	assert.True(t, r.Registry().Contains("UserName2"))
}

func TestSynthesizePrefixSuffix(t *testing.T) {
	r := runOver(t, `
user:
  type: object
  properties:
    id:
      type: string
`, Config{TypePrefix: "Api", TypeSuffix: "Model"})

	name, _ := r.TypeNameFor("user")
	assert.Equal(t, "ApiUserModel", name)
}

func TestSynthesizeSchemaTransform(t *testing.T) {
	r := runOver(t, `
User:
  type: object
  properties:
    secret:
      type: string
    id:
      type: string
`, Config{SchemaTransform: func(s *parser.Schema) *parser.Schema {
		if s != nil && s.HasProperties() {
			// Drop the secret property before lowering.
			filtered := *s
			filtered.Properties = parser.NewOrderedMap[*parser.Schema]()
			for _, k := range s.Properties.Keys() {
				if k == "secret" {
					continue
				}
				v, _ := s.Properties.Get(k)
				filtered.Properties.Set(k, v)
			}
			return &filtered
		}
		return s
	}})

	st, _ := r.Registry().Get("User")
	require.Len(t, st.Fields, 1)
	assert.Equal(t, "id", st.Fields[0].Name)
}

func TestSynthesizeSnakeConvention(t *testing.T) {
	r := runOver(t, `
User:
  type: object
  properties:
    displayName:
      type: string
`, Config{NamingConvention: ConventionSnake})

	st, _ := r.Registry().Get("User")
	assert.Equal(t, "display_name", st.Fields[0].Name)
}

// Two runs over the same document produce byte-identical output shapes.
func TestSynthesizeDeterminism(t *testing.T) {
	src := `
Status:
  enum: [a, b, c]
Order:
  type: object
  properties:
    status:
      $ref: '#/components/schemas/Status'
    items:
      type: array
      items:
        $ref: '#/components/schemas/Item'
  required: [status]
Item:
  type: object
  properties:
    sku:
      type: string
`
	r1 := runOver(t, src, Config{})
	r2 := runOver(t, src, Config{})

	require.Equal(t, r1.Registry().Names(), r2.Registry().Names())
	for _, name := range r1.Registry().Names() {
		a, _ := r1.Registry().Get(name)
		b, _ := r2.Registry().Get(name)
		assert.Equal(t, a.Kind, b.Kind, name)
		assert.Equal(t, a.Deps, b.Deps, name)
		assert.Len(t, b.Fields, len(a.Fields), name)
	}
	assert.Equal(t, len(r1.Issues()), len(r2.Issues()))
}

func TestSynthesizeNilDocument(t *testing.T) {
	r := NewRun(nil, Config{})
	_, err := r.SynthesizeDocument()
	assert.Error(t, err)
}

func TestSynthesizeUnknownShape(t *testing.T) {
	r := runOver(t, `
Mystery:
  type: file
`, Config{})

	st, ok := r.Registry().Get("Mystery")
	require.True(t, ok)
	assert.Equal(t, KindAlias, st.Kind)
	assert.Equal(t, ExprUnknown, st.Alias.Kind)
	assert.Contains(t, issueCodes(r), issues.CodeUnsupportedShape)
}
