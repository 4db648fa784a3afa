package synth

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/GGROM1/schemantic-sub000/internal/naming"
)

// Convention selects the casing applied to normalized member names.
type Convention int

const (
	// ConventionLowerCamel produces lowerCamelCase names (the default).
	ConventionLowerCamel Convention = iota
	// ConventionSnake produces snake_case names.
	ConventionSnake
	// ConventionUpperCamel produces UpperCamelCase names.
	ConventionUpperCamel
)

// ParseConvention maps a configuration string to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "lower-camel", "camelCase":
		return ConventionLowerCamel, nil
	case "snake", "snake_case":
		return ConventionSnake, nil
	case "upper-camel", "PascalCase":
		return ConventionUpperCamel, nil
	default:
		return ConventionLowerCamel, fmt.Errorf("unknown naming convention: %q", s)
	}
}

// String returns the configuration spelling of the convention.
func (c Convention) String() string {
	switch c {
	case ConventionSnake:
		return "snake"
	case ConventionUpperCamel:
		return "upper-camel"
	default:
		return "lower-camel"
	}
}

// Normalize converts a raw property or parameter name to the configured
// convention. Runs of non-alphanumeric characters collapse to a single
// separator before the casing transform. The result is always a non-empty,
// valid identifier: degenerate input falls back to "field", and a leading
// digit is escaped with an underscore.
func Normalize(raw string, convention Convention) string {
	var name string
	switch convention {
	case ConventionSnake:
		name = naming.ToSnakeCase(raw)
	case ConventionUpperCamel:
		name = naming.ToPascalCase(raw)
	default:
		name = naming.ToCamelCase(raw)
	}
	if name == "" {
		return "field"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "_" + name
	}
	return name
}

// Format converts a raw schema name to a canonical type name. The core
// token sequence is always upper-camel regardless of the configured member
// convention, because type identifiers are conventionally UpperCamel even
// when members are not. Prefix and suffix are concatenated verbatim.
func Format(raw, prefix, suffix string) string {
	core := naming.ToPascalCase(raw)
	if core == "" {
		core = "Type"
	}
	if unicode.IsDigit(rune(core[0])) {
		core = "T" + core
	}
	return prefix + core + suffix
}

// Name families handed out to anonymous schemas, by synthesis kind.
const (
	FamilyType      = "GeneratedType"
	FamilyEnum      = "GeneratedEnum"
	FamilyPrimitive = "GeneratedPrimitive"
)

// NamingState invents collision-free names for anonymous schemas within one
// generation run. It is owned by the run and reset with it, so concurrent
// runs never share counters.
type NamingState struct {
	counters map[string]int
	used     map[string]bool
}

// NewNamingState returns a fresh naming state.
func NewNamingState() *NamingState {
	return &NamingState{
		counters: make(map[string]int),
		used:     make(map[string]bool),
	}
}

// Reserve marks name as taken so anonymous names never collide with it.
func (n *NamingState) Reserve(name string) {
	n.used[name] = true
}

// IsUsed reports whether name has been reserved or handed out.
func (n *NamingState) IsUsed(name string) bool {
	return n.used[name]
}

// Next returns the next unused name from family: the bare family name
// first, then family2, family3, and so on.
func (n *NamingState) Next(family string) string {
	for {
		n.counters[family]++
		candidate := family
		if n.counters[family] > 1 {
			candidate = fmt.Sprintf("%s%d", family, n.counters[family])
		}
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
}

// enumKey derives a deterministic identifier key for an enumeration literal.
// Strings are upper-cased with non-identifier runs collapsed to a single
// underscore; numeric literals always use the VALUE_<value> form; anything
// that comes out empty falls back to VALUE_<index>.
func enumKey(value any, index int) string {
	switch v := value.(type) {
	case string:
		key := screamingKey(v)
		if key == "" {
			return fmt.Sprintf("VALUE_%d", index)
		}
		return key
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return sanitizeNumericKey(fmt.Sprintf("VALUE_%d", v))
	case float32, float64:
		return sanitizeNumericKey(fmt.Sprintf("VALUE_%v", v))
	case nil:
		return "NULL"
	default:
		return fmt.Sprintf("VALUE_%d", index)
	}
}

// screamingKey upper-cases s, replaces non-identifier characters with
// underscores, collapses repeats, and strips leading/trailing underscores.
func screamingKey(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	key := strings.TrimRight(b.String(), "_")
	if key != "" && unicode.IsDigit(rune(key[0])) {
		key = "VALUE_" + key
	}
	return key
}

// sanitizeNumericKey rewrites characters a numeric literal can carry that
// are not identifier-safe (minus sign, decimal point).
func sanitizeNumericKey(key string) string {
	key = strings.ReplaceAll(key, "-", "MINUS_")
	key = strings.ReplaceAll(key, ".", "_")
	return key
}
