package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/GGROM1/schemantic-sub000/internal/naming"
	"github.com/GGROM1/schemantic-sub000/synth"
)

// renderTypeScriptHooks emits one React Query hook per endpoint: useQuery
// wrappers for GET and HEAD operations, useMutation wrappers for the rest.
// The hooks delegate to the generated ApiClient, so client generation is a
// prerequisite.
func renderTypeScriptHooks(endpoints []synth.EndpointDescriptor) []byte {
	var b bytes.Buffer
	b.WriteString(tsHeader)
	b.WriteString("\nimport { useMutation, useQuery } from '@tanstack/react-query';\n")
	b.WriteString("import type { ApiClient } from './client';\n")

	for _, ep := range endpoints {
		b.WriteString("\n")
		if ep.Deprecated {
			writeTSDoc(&b, "", "@deprecated")
		}
		if ep.Method == "GET" || ep.Method == "HEAD" {
			writeQueryHook(&b, ep)
		} else {
			writeMutationHook(&b, ep)
		}
	}
	return b.Bytes()
}

func hookName(funcName string) string {
	return "use" + naming.ToTitleCase(funcName)
}

func writeQueryHook(b *bytes.Buffer, ep synth.EndpointDescriptor) {
	args := methodArgs(ep)

	params := []string{"client: ApiClient"}
	keyParts := []string{fmt.Sprintf("'%s'", ep.FuncName)}
	var callArgs []string
	for _, a := range args {
		opt := ""
		if !a.required {
			opt = "?"
		}
		params = append(params, fmt.Sprintf("%s%s: %s", a.name, opt, a.tsType))
		keyParts = append(keyParts, a.name)
		callArgs = append(callArgs, a.name)
	}

	fmt.Fprintf(b, "export function %s(%s) {\n", hookName(ep.FuncName), strings.Join(params, ", "))
	fmt.Fprintf(b, "  return useQuery({\n")
	fmt.Fprintf(b, "    queryKey: [%s],\n", strings.Join(keyParts, ", "))
	fmt.Fprintf(b, "    queryFn: () => client.%s(%s),\n", ep.FuncName, strings.Join(callArgs, ", "))
	fmt.Fprintf(b, "  });\n")
	fmt.Fprintf(b, "}\n")
}

// writeMutationHook packs every argument into a single variables object so
// the mutation can be triggered with one value.
func writeMutationHook(b *bytes.Buffer, ep synth.EndpointDescriptor) {
	args := methodArgs(ep)

	fmt.Fprintf(b, "export function %s(client: ApiClient) {\n", hookName(ep.FuncName))
	if len(args) == 0 {
		fmt.Fprintf(b, "  return useMutation({\n")
		fmt.Fprintf(b, "    mutationFn: () => client.%s(),\n", ep.FuncName)
		fmt.Fprintf(b, "  });\n")
		fmt.Fprintf(b, "}\n")
		return
	}

	fields := make([]string, len(args))
	passed := make([]string, len(args))
	for i, a := range args {
		opt := ""
		if !a.required {
			opt = "?"
		}
		fields[i] = fmt.Sprintf("%s%s: %s", a.name, opt, a.tsType)
		passed[i] = "vars." + a.name
	}

	fmt.Fprintf(b, "  return useMutation({\n")
	fmt.Fprintf(b, "    mutationFn: (vars: { %s }) => client.%s(%s),\n",
		strings.Join(fields, "; "), ep.FuncName, strings.Join(passed, ", "))
	fmt.Fprintf(b, "  });\n")
	fmt.Fprintf(b, "}\n")
}
