package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/parser"
	"github.com/GGROM1/schemantic-sub000/synth"
)

// clientArg is one argument of a generated client method.
type clientArg struct {
	name     string
	tsType   string
	required bool
}

// renderTypeScriptClient emits a fetch-based client class with one async
// method per extracted endpoint.
func renderTypeScriptClient(registry *synth.Registry, endpoints []synth.EndpointDescriptor, convention synth.Convention) []byte {
	var b bytes.Buffer
	b.WriteString(tsHeader)

	if imports := clientImports(registry, endpoints); len(imports) > 0 {
		fmt.Fprintf(&b, "\nimport type { %s } from './types';\n", strings.Join(imports, ", "))
	}

	b.WriteString(`
/** Options for constructing an ApiClient. */
export interface ClientOptions {
  baseUrl: string;
  headers?: Record<string, string>;
  fetch?: typeof fetch;
}

/** Error thrown when the server responds with a non-2xx status. */
export class ApiError extends Error {
  constructor(
    public readonly status: number,
    public readonly body: unknown,
  ) {
    super('request failed with status ' + status);
    this.name = 'ApiError';
  }
}

export class ApiClient {
  constructor(private readonly options: ClientOptions) {}

  private async request(
    method: string,
    path: string,
    query: Record<string, string | undefined>,
    headers: Record<string, string | undefined>,
    body?: unknown,
  ): Promise<unknown> {
    const url = new URL(path, this.options.baseUrl);
    for (const [key, value] of Object.entries(query)) {
      if (value !== undefined) url.searchParams.set(key, value);
    }
    const allHeaders: Record<string, string> = { ...this.options.headers };
    for (const [key, value] of Object.entries(headers)) {
      if (value !== undefined) allHeaders[key] = value;
    }
    const init: RequestInit = { method, headers: allHeaders };
    if (body !== undefined) {
      allHeaders['Content-Type'] = 'application/json';
      init.body = JSON.stringify(body);
    }
    const doFetch = this.options.fetch ?? fetch;
    const res = await doFetch(url.toString(), init);
    if (!res.ok) {
      throw new ApiError(res.status, await res.text());
    }
    if (res.status === 204) {
      return undefined;
    }
    const text = await res.text();
    return text === '' ? undefined : JSON.parse(text);
  }
`)

	for _, ep := range endpoints {
		writeClientMethod(&b, ep, convention)
	}

	b.WriteString("}\n")
	return b.Bytes()
}

// clientImports lists the named model types the endpoints reference, in
// first-occurrence order, restricted to types the registry actually holds
// (custom-mapped names are ambient, not imported).
func clientImports(registry *synth.Registry, endpoints []synth.EndpointDescriptor) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, ep := range endpoints {
		for _, p := range ep.Params {
			namedRefs(p.Type, seen, &refs)
		}
		namedRefs(ep.RequestBody, seen, &refs)
		namedRefs(ep.ReturnType, seen, &refs)
	}
	out := refs[:0]
	for _, name := range refs {
		if registry.Contains(name) {
			out = append(out, name)
		}
	}
	return out
}

func writeClientMethod(b *bytes.Buffer, ep synth.EndpointDescriptor, convention synth.Convention) {
	args := methodArgs(ep)

	b.WriteString("\n")
	doc := ep.Description
	if ep.Deprecated {
		if doc != "" {
			doc += " "
		}
		doc += "@deprecated"
	}
	writeTSDoc(b, "  ", doc)

	rendered := make([]string, len(args))
	for i, a := range args {
		opt := ""
		if !a.required {
			opt = "?"
		}
		rendered[i] = fmt.Sprintf("%s%s: %s", a.name, opt, a.tsType)
	}
	fmt.Fprintf(b, "  async %s(%s): Promise<%s> {\n", ep.FuncName, strings.Join(rendered, ", "), tsExpr(ep.ReturnType))

	query := paramObject(ep.Params, "query")
	headers := paramObject(ep.Params, "header")

	call := fmt.Sprintf("this.request('%s', `%s`, %s, %s%s)",
		ep.Method, pathTemplate(ep.Path, convention), query, headers, bodyArg(ep))

	if ep.ReturnType != nil && ep.ReturnType.Kind == synth.ExprVoid {
		fmt.Fprintf(b, "    await %s;\n", call)
	} else {
		fmt.Fprintf(b, "    return (await %s) as %s;\n", call, tsExpr(ep.ReturnType))
	}
	b.WriteString("  }\n")
}

// methodArgs orders the method arguments so that no required argument
// follows an optional one: required parameters, the body when mandatory,
// then everything optional.
func methodArgs(ep synth.EndpointDescriptor) []clientArg {
	var required, optional []clientArg
	for _, p := range ep.Params {
		if p.Location == parser.InCookie {
			continue
		}
		arg := clientArg{name: p.Name, tsType: tsExpr(p.Type), required: p.Required}
		if p.Required {
			required = append(required, arg)
		} else {
			optional = append(optional, arg)
		}
	}
	if ep.RequestBody != nil {
		arg := clientArg{name: "body", tsType: tsExpr(ep.RequestBody), required: ep.RequestBodyRequired}
		if ep.RequestBodyRequired {
			required = append(required, arg)
		} else {
			optional = append(optional, arg)
		}
	}
	return append(required, optional...)
}

// clientSkippedParams reports the cookie-located parameters the fetch
// client cannot send, so their omission from the method signatures is
// visible in the generation report.
func clientSkippedParams(endpoints []synth.EndpointDescriptor) []GenerateIssue {
	var out []GenerateIssue
	for _, ep := range endpoints {
		for _, p := range ep.Params {
			if p.Location != parser.InCookie {
				continue
			}
			out = append(out, GenerateIssue{
				Code:     issues.CodeUnsupportedShape,
				Path:     fmt.Sprintf("paths.%s.%s", ep.Path, strings.ToLower(ep.Method)),
				Message:  fmt.Sprintf("cookie parameter %s cannot be sent by the fetch client; omitted from %s", p.RawName, ep.FuncName),
				Severity: SeverityWarning,
				Value:    p.RawName,
			})
		}
	}
	return out
}

// pathTemplate rewrites {param} placeholders into encoded template
// interpolations. The interpolated identifier is the placeholder name
// normalized the same way the matching method argument was.
func pathTemplate(path string, convention synth.Convention) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2 {
			name := synth.Normalize(seg[1:len(seg)-1], convention)
			segments[i] = "${encodeURIComponent(String(" + name + "))}"
		}
	}
	return strings.Join(segments, "/")
}

// paramObject renders the query or header argument object literal.
func paramObject(params []synth.ParamDescriptor, location string) string {
	var entries []string
	for _, p := range params {
		if p.Location != location {
			continue
		}
		value := "String(" + p.Name + ")"
		if !p.Required {
			value = p.Name + " === undefined ? undefined : " + value
		}
		entries = append(entries, fmt.Sprintf("'%s': %s", p.RawName, value))
	}
	if len(entries) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}

func bodyArg(ep synth.EndpointDescriptor) string {
	if ep.RequestBody == nil {
		return ""
	}
	return ", body"
}
