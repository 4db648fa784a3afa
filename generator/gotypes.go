package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/internal/naming"
	"github.com/GGROM1/schemantic-sub000/synth"
)

// renderGoTypes emits the registry as Go declarations and runs the result
// through goimports. A formatting failure keeps the raw source and reports
// a warning so the caller can still inspect the output.
func renderGoTypes(pkg string, registry *synth.Registry) ([]byte, []GenerateIssue) {
	var b bytes.Buffer
	b.WriteString("// Code generated by schemantic. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n", pkg)

	for i := 0; i < registry.Len(); i++ {
		b.WriteString("\n")
		writeGoType(&b, registry.At(i))
	}

	formatted, err := imports.Process("types.go", b.Bytes(), nil)
	if err != nil {
		return b.Bytes(), []GenerateIssue{{
			Code:     issues.CodeUnsupportedShape,
			Path:     "types.go",
			Message:  fmt.Sprintf("generated source failed formatting: %v", err),
			Severity: SeverityWarning,
		}}
	}
	return formatted, nil
}

func writeGoType(b *bytes.Buffer, t *synth.SynthesizedType) {
	writeGoDoc(b, t.Name, t.Description)
	switch t.Kind {
	case synth.KindObject:
		writeGoStruct(b, t)
	case synth.KindEnum:
		writeGoEnum(b, t)
	default:
		fmt.Fprintf(b, "type %s = %s\n", t.Name, goExpr(t.Alias))
	}
}

func writeGoDoc(b *bytes.Buffer, name, description string) {
	if description == "" {
		return
	}
	for i, line := range strings.Split(strings.TrimSpace(description), "\n") {
		if i == 0 && !strings.HasPrefix(line, name) {
			line = name + " " + lowerFirst(line)
		}
		fmt.Fprintf(b, "// %s\n", line)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func writeGoStruct(b *bytes.Buffer, t *synth.SynthesizedType) {
	fmt.Fprintf(b, "type %s struct {\n", t.Name)
	if t.Base != "" {
		fmt.Fprintf(b, "\t%s\n", t.Base)
	}
	for _, f := range t.Fields {
		goName := naming.ToPascalCase(f.RawName)
		if goName == "" {
			goName = naming.ToPascalCase(f.Name)
		}
		typ := goExpr(f.Type)
		tag := f.RawName
		if !f.Required {
			// Optional fields are pointers so absence survives a
			// marshal round trip.
			if !strings.HasPrefix(typ, "[]") && !strings.HasPrefix(typ, "map[") && typ != "any" {
				typ = "*" + typ
			}
			tag += ",omitempty"
		}
		fmt.Fprintf(b, "\t%s %s `json:%s`\n", goName, typ, strconv.Quote(tag))
	}
	b.WriteString("}\n")
}

// writeGoEnum emits a typed constant block when all values share a scalar
// base type, and an any alias otherwise.
func writeGoEnum(b *bytes.Buffer, t *synth.SynthesizedType) {
	base := enumBaseType(t.Members)
	if base == "" {
		fmt.Fprintf(b, "type %s = any\n", t.Name)
		return
	}

	fmt.Fprintf(b, "type %s %s\n\n", t.Name, base)
	b.WriteString("const (\n")
	for _, m := range t.Members {
		fmt.Fprintf(b, "\t%s%s %s = %s\n", t.Name, naming.ToPascalCase(strings.ToLower(m.Key)), t.Name, goLiteral(m.Value))
	}
	b.WriteString(")\n")
}

// enumBaseType returns the shared Go base type of the member values, or ""
// when the values are mixed or non-scalar.
func enumBaseType(members []synth.EnumMember) string {
	base := ""
	for _, m := range members {
		var cur string
		switch m.Value.(type) {
		case string:
			cur = "string"
		case int, int64, uint64:
			cur = "int64"
		case float32, float64:
			cur = "float64"
		case bool:
			cur = "bool"
		default:
			return ""
		}
		if base == "" {
			base = cur
		} else if base != cur {
			return ""
		}
	}
	return base
}

func goLiteral(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// goExpr renders a type expression in Go syntax. Unions have no direct Go
// shape and widen to any.
func goExpr(e *synth.TypeExpr) string {
	if e == nil {
		return "any"
	}
	switch e.Kind {
	case synth.ExprPrimitive:
		return goPrimitive(e.Name)
	case synth.ExprNamed:
		return e.Name
	case synth.ExprLiteral:
		return goLiteralType(e.Literal)
	case synth.ExprArray:
		return "[]" + goExpr(e.Elem)
	case synth.ExprMap:
		return "map[string]" + goExpr(e.Elem)
	case synth.ExprUnion:
		return "any"
	case synth.ExprObject:
		var b strings.Builder
		b.WriteString("struct {\n")
		for _, f := range e.Fields {
			name := naming.ToPascalCase(f.RawName)
			if name == "" {
				name = naming.ToPascalCase(f.Name)
			}
			tag := f.RawName
			if !f.Required {
				tag += ",omitempty"
			}
			fmt.Fprintf(&b, "\t%s %s `json:%s`\n", name, goExpr(f.Type), strconv.Quote(tag))
		}
		b.WriteString("}")
		return b.String()
	case synth.ExprVoid:
		return "struct{}"
	default:
		return "any"
	}
}

func goPrimitive(name string) string {
	switch name {
	case synth.PrimString:
		return "string"
	case synth.PrimNumber:
		return "float64"
	case synth.PrimInteger:
		return "int64"
	case synth.PrimBoolean:
		return "bool"
	default:
		return "any"
	}
}

// goLiteralType maps a literal's value to the Go type that can carry it.
func goLiteralType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int, int64, uint64:
		return "int64"
	case float32, float64:
		return "float64"
	case bool:
		return "bool"
	default:
		return "any"
	}
}
