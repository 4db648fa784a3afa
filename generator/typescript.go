package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GGROM1/schemantic-sub000/synth"
)

const tsHeader = "// Code generated by schemantic. DO NOT EDIT.\n"

// renderTypeScriptTypes emits the model type declarations, one per
// registered type, in registration order. TypeScript hoists type
// declarations, so document order is kept for readability rather than
// resolved into dependency order.
func renderTypeScriptTypes(registry *synth.Registry) []byte {
	var b bytes.Buffer
	b.WriteString(tsHeader)
	for i := 0; i < registry.Len(); i++ {
		b.WriteString("\n")
		writeTSType(&b, registry.At(i))
	}
	return b.Bytes()
}

func writeTSType(b *bytes.Buffer, t *synth.SynthesizedType) {
	writeTSDoc(b, "", t.Description)
	switch t.Kind {
	case synth.KindObject:
		writeTSInterface(b, t)
	case synth.KindEnum:
		writeTSEnum(b, t)
	default:
		fmt.Fprintf(b, "export type %s = %s;\n", t.Name, tsExpr(t.Alias))
	}
}

func writeTSInterface(b *bytes.Buffer, t *synth.SynthesizedType) {
	extends := ""
	if t.Base != "" {
		extends = " extends " + t.Base
	}
	fmt.Fprintf(b, "export interface %s%s {\n", t.Name, extends)
	for _, f := range t.Fields {
		writeTSDoc(b, "  ", f.Description)
		opt := ""
		if !f.Required {
			opt = "?"
		}
		fmt.Fprintf(b, "  %s%s: %s;\n", f.Name, opt, tsExpr(f.Type))
	}
	b.WriteString("}\n")
}

// writeTSEnum emits a native enum when every value is a string, and a
// const-object-with-derived-type otherwise, since TypeScript enums only
// admit string and number initializers.
func writeTSEnum(b *bytes.Buffer, t *synth.SynthesizedType) {
	allStrings := true
	for _, m := range t.Members {
		if _, ok := m.Value.(string); !ok {
			allStrings = false
			break
		}
	}

	if allStrings {
		fmt.Fprintf(b, "export enum %s {\n", t.Name)
		for _, m := range t.Members {
			fmt.Fprintf(b, "  %s = %s,\n", m.Key, tsLiteral(m.Value))
		}
		b.WriteString("}\n")
		return
	}

	fmt.Fprintf(b, "export const %s = {\n", t.Name)
	for _, m := range t.Members {
		fmt.Fprintf(b, "  %s: %s,\n", m.Key, tsLiteral(m.Value))
	}
	b.WriteString("} as const;\n")
	fmt.Fprintf(b, "export type %s = (typeof %s)[keyof typeof %s];\n", t.Name, t.Name, t.Name)
}

func writeTSDoc(b *bytes.Buffer, indent, description string) {
	if description == "" {
		return
	}
	fmt.Fprintf(b, "%s/** %s */\n", indent, strings.ReplaceAll(description, "*/", "*\\/"))
}

// tsExpr renders a type expression in TypeScript syntax.
func tsExpr(e *synth.TypeExpr) string {
	if e == nil {
		return "unknown"
	}
	switch e.Kind {
	case synth.ExprPrimitive:
		return tsPrimitive(e.Name)
	case synth.ExprNamed:
		return e.Name
	case synth.ExprLiteral:
		return tsLiteral(e.Literal)
	case synth.ExprArray:
		elem := tsExpr(e.Elem)
		if e.Elem != nil && e.Elem.Kind == synth.ExprUnion {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	case synth.ExprMap:
		return "Record<string, " + tsExpr(e.Elem) + ">"
	case synth.ExprUnion:
		if len(e.Members) == 0 {
			return "never"
		}
		parts := make([]string, len(e.Members))
		for i, m := range e.Members {
			parts[i] = tsExpr(m)
		}
		return strings.Join(parts, " | ")
	case synth.ExprObject:
		if len(e.Fields) == 0 {
			return "Record<string, never>"
		}
		var b strings.Builder
		b.WriteString("{ ")
		for i, f := range e.Fields {
			if i > 0 {
				b.WriteString("; ")
			}
			opt := ""
			if !f.Required {
				opt = "?"
			}
			fmt.Fprintf(&b, "%s%s: %s", f.Name, opt, tsExpr(f.Type))
		}
		b.WriteString(" }")
		return b.String()
	case synth.ExprVoid:
		return "void"
	default:
		return "unknown"
	}
}

func tsPrimitive(name string) string {
	switch name {
	case synth.PrimString:
		return "string"
	case synth.PrimNumber, synth.PrimInteger:
		return "number"
	case synth.PrimBoolean:
		return "boolean"
	case synth.PrimNull:
		return "null"
	default:
		return "unknown"
	}
}

func tsLiteral(v any) string {
	if v == nil {
		return "null"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "unknown"
	}
	return string(data)
}

// namedRefs collects the distinct named type references inside expr, in
// first-occurrence order.
func namedRefs(expr *synth.TypeExpr, seen map[string]bool, out *[]string) {
	if expr == nil {
		return
	}
	if expr.Kind == synth.ExprNamed && !seen[expr.Name] {
		seen[expr.Name] = true
		*out = append(*out, expr.Name)
	}
	namedRefs(expr.Elem, seen, out)
	for _, m := range expr.Members {
		namedRefs(m, seen, out)
	}
	for _, f := range expr.Fields {
		namedRefs(f.Type, seen, out)
	}
}
