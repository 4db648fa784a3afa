package synth

import (
	"fmt"
	"strings"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/internal/naming"
	"github.com/GGROM1/schemantic-sub000/internal/severity"
	"github.com/GGROM1/schemantic-sub000/parser"
	"github.com/GGROM1/schemantic-sub000/scherrors"
)

// CodePathParamMismatch marks a path template whose placeholders do not
// line up with the declared path parameters.
const CodePathParamMismatch = "PATH_PARAM_MISMATCH"

// ParamDescriptor describes one operation parameter.
type ParamDescriptor struct {
	// Name is the normalized parameter name
	Name string
	// RawName is the parameter name as declared
	RawName string
	// Location is one of path, query, header, cookie
	Location string
	// Type is the lowered parameter type
	Type *TypeExpr
	// Required is true for mandatory parameters
	Required bool
	// Description is the parameter description, if any
	Description string
}

// ResponseDescriptor describes one declared response.
type ResponseDescriptor struct {
	// Status is the status code key ("200", "4XX", "default")
	Status string
	// Type is the lowered response body type; void when no content
	Type *TypeExpr
}

// EndpointDescriptor is the extracted shape of one API operation,
// independent of any particular client rendering.
type EndpointDescriptor struct {
	// OperationID is the explicit operation id, if declared
	OperationID string
	// Method is the upper-cased HTTP method
	Method string
	// Path is the path template with {param} placeholders
	Path string
	// FuncName is the derived client method name
	FuncName string
	// Params are the operation's parameters in declaration order,
	// path-item level parameters first
	Params []ParamDescriptor
	// RequestBody is the lowered request body type; nil when none
	RequestBody *TypeExpr
	// RequestBodyRequired is true when the body is mandatory
	RequestBodyRequired bool
	// Responses are the declared responses in document order
	Responses []ResponseDescriptor
	// ReturnType is the single response type, or a union across all
	// declared responses when more than one is present
	ReturnType *TypeExpr
	// Description is the operation summary or description
	Description string
	// Deprecated marks operations the document deprecates
	Deprecated bool
}

// ExtractEndpoints walks every path and method and produces the flat
// endpoint descriptor list, reusing the synthesis path for parameter,
// body, and response types. Endpoint types are lowered inline and do not
// enter the named registry.
func (r *Run) ExtractEndpoints() ([]EndpointDescriptor, error) {
	if r.doc == nil {
		return nil, &scherrors.GenerationError{Target: "synth", Message: "no document to extract endpoints from"}
	}

	var endpoints []EndpointDescriptor
	for _, path := range r.doc.Paths.Keys() {
		item, _ := r.doc.Paths.Get(path)
		if item == nil {
			continue
		}
		for _, mo := range item.Operations() {
			endpoints = append(endpoints, r.extractOperation(path, item, mo))
		}
	}
	return endpoints, nil
}

func (r *Run) extractOperation(path string, item *parser.PathItem, mo parser.MethodOperation) EndpointDescriptor {
	op := mo.Operation
	opPath := fmt.Sprintf("paths.%s.%s", path, mo.Method)

	ep := EndpointDescriptor{
		OperationID: op.OperationID,
		Method:      strings.ToUpper(mo.Method),
		Path:        path,
		FuncName:    r.funcName(op, path, mo.Method),
		Description: operationDescription(op),
		Deprecated:  op.Deprecated,
	}

	// Path-item parameters apply to every operation; operation-level
	// parameters follow and may shadow them downstream.
	for _, p := range item.Parameters {
		if pd, ok := r.extractParam(ep.FuncName, p, opPath); ok {
			ep.Params = append(ep.Params, pd)
		}
	}
	for _, p := range op.Parameters {
		if pd, ok := r.extractParam(ep.FuncName, p, opPath); ok {
			ep.Params = append(ep.Params, pd)
		}
	}

	r.validatePathParams(path, opPath, ep.Params)

	if op.RequestBody != nil {
		if schema := parser.BodySchema(op.RequestBody.Content); schema != nil {
			schema = r.transform(schema)
			ep.RequestBody = r.lowerExpr(ep.FuncName, schema, opPath+".requestBody", 0)
			ep.RequestBodyRequired = op.RequestBody.Required
		}
	}

	ep.Responses = r.extractResponses(ep.FuncName, op, opPath)
	ep.ReturnType = responseUnion(ep.Responses)

	return ep
}

// extractParam lowers one parameter. A $ref-valued parameter is skipped
// rather than resolved; this is a known limitation.
func (r *Run) extractParam(owner string, p *parser.Parameter, opPath string) (ParamDescriptor, bool) {
	if p == nil {
		return ParamDescriptor{}, false
	}
	if p.Ref != "" {
		r.addIssue(issues.CodeUnsupportedShape, opPath,
			fmt.Sprintf("$ref-valued parameter %s skipped", p.Ref), severity.SeverityWarning, p.Ref)
		return ParamDescriptor{}, false
	}

	var schema *parser.Schema
	if p.Schema != nil {
		schema = r.transform(p.Schema)
	}
	return ParamDescriptor{
		Name:        Normalize(p.Name, r.cfg.NamingConvention),
		RawName:     p.Name,
		Location:    p.In,
		Type:        r.lowerExpr(owner, schema, opPath+".parameters."+p.Name, 0),
		Required:    p.Required || p.In == parser.InPath,
		Description: p.Description,
	}, true
}

// validatePathParams checks that every {placeholder} in the path template
// has a corresponding path-located parameter.
func (r *Run) validatePathParams(path, opPath string, params []ParamDescriptor) {
	declared := make(map[string]bool)
	for _, p := range params {
		if p.Location == parser.InPath {
			declared[p.RawName] = true
		}
	}
	for _, placeholder := range pathPlaceholders(path) {
		if !declared[placeholder] {
			r.addIssue(CodePathParamMismatch, opPath,
				fmt.Sprintf("path placeholder {%s} has no path parameter", placeholder),
				severity.SeverityError, placeholder)
		}
	}
}

// pathPlaceholders returns the {param} names in a path template, in order.
func pathPlaceholders(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2 {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}

func (r *Run) extractResponses(owner string, op *parser.Operation, opPath string) []ResponseDescriptor {
	var out []ResponseDescriptor
	for _, status := range op.Responses.Keys() {
		resp, _ := op.Responses.Get(status)
		if resp == nil {
			continue
		}
		rd := ResponseDescriptor{Status: status, Type: Void()}
		if schema := parser.BodySchema(resp.Content); schema != nil {
			schema = r.transform(schema)
			rd.Type = r.lowerExpr(owner, schema, opPath+".responses."+status, 0)
		}
		out = append(out, rd)
	}
	return out
}

// responseUnion selects the single declared response type, or a union
// across all declared responses otherwise. An operation with no declared
// responses returns void.
func responseUnion(responses []ResponseDescriptor) *TypeExpr {
	switch len(responses) {
	case 0:
		return Void()
	case 1:
		return responses[0].Type
	default:
		members := make([]*TypeExpr, len(responses))
		for i, rd := range responses {
			members[i] = rd.Type
		}
		return &TypeExpr{Kind: ExprUnion, Members: members}
	}
}

// funcName derives the client method name: the explicit operation id when
// present, otherwise verb + path resources with the parameterized resource
// singularized. GET /users/{id} -> getUser; GET /users -> getUsers.
func (r *Run) funcName(op *parser.Operation, path, method string) string {
	if op.OperationID != "" {
		return naming.ToCamelCase(op.OperationID)
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	var tokens []string
	for i, seg := range segments {
		if seg == "" || (strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")) {
			continue
		}
		// A resource directly followed by its path parameter addresses a
		// single item: singularize and skip the parameter itself.
		if i+1 < len(segments) && strings.HasPrefix(segments[i+1], "{") {
			tokens = append(tokens, naming.Singularize(seg))
			continue
		}
		tokens = append(tokens, seg)
	}

	name := naming.ToCamelCase(method + " " + strings.Join(tokens, " "))
	if name == "" {
		name = naming.ToCamelCase(method)
	}
	return name
}

func operationDescription(op *parser.Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	return op.Description
}
