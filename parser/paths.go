package parser

// HTTP method constants in canonical emission order.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// methodOrder fixes the traversal order of operations within a path item.
var methodOrder = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// PathItem describes the operations available on a single path
type PathItem struct {
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Get         *Operation   `yaml:"get,omitempty" json:"get,omitempty"`
	Put         *Operation   `yaml:"put,omitempty" json:"put,omitempty"`
	Post        *Operation   `yaml:"post,omitempty" json:"post,omitempty"`
	Delete      *Operation   `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options     *Operation   `yaml:"options,omitempty" json:"options,omitempty"`
	Head        *Operation   `yaml:"head,omitempty" json:"head,omitempty"`
	Patch       *Operation   `yaml:"patch,omitempty" json:"patch,omitempty"`
	Trace       *Operation   `yaml:"trace,omitempty" json:"trace,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// MethodOperation pairs an HTTP method with its operation.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operations returns the declared operations in canonical method order.
func (p *PathItem) Operations() []MethodOperation {
	if p == nil {
		return nil
	}
	byMethod := map[string]*Operation{
		MethodGet:     p.Get,
		MethodPut:     p.Put,
		MethodPost:    p.Post,
		MethodDelete:  p.Delete,
		MethodOptions: p.Options,
		MethodHead:    p.Head,
		MethodPatch:   p.Patch,
		MethodTrace:   p.Trace,
	}
	var ops []MethodOperation
	for _, method := range methodOrder {
		if op := byMethod[method]; op != nil {
			ops = append(ops, MethodOperation{Method: method, Operation: op})
		}
	}
	return ops
}

// Operation describes a single API operation on a path
type Operation struct {
	Tags        []string               `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary     string                 `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string                 `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters  []*Parameter           `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody           `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   *OrderedMap[*Response] `yaml:"responses,omitempty" json:"responses,omitempty"`
	Deprecated  bool                   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter
type Parameter struct {
	Ref         string  `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name        string  `yaml:"name,omitempty" json:"name,omitempty"`
	In          string  `yaml:"in,omitempty" json:"in,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool    `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Parameter locations
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

// RequestBody describes a single request body
type RequestBody struct {
	Description string                  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                    `yaml:"required,omitempty" json:"required,omitempty"`
	Content     *OrderedMap[*MediaType] `yaml:"content,omitempty" json:"content,omitempty"`
}

// Response describes a single response from an API operation
type Response struct {
	Description string                  `yaml:"description,omitempty" json:"description,omitempty"`
	Content     *OrderedMap[*MediaType] `yaml:"content,omitempty" json:"content,omitempty"`
}

// MediaType provides the schema for a media type
type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// jsonMediaTypes are the media types considered JSON-shaped, in preference
// order, when selecting a body schema.
var jsonMediaTypes = []string{
	"application/json",
	"application/problem+json",
	"*/*",
}

// BodySchema selects the schema for the JSON-shaped media type of a content
// map, falling back to the first declared json-suffixed media type when none
// of the preferred types match.
func BodySchema(content *OrderedMap[*MediaType]) *Schema {
	for _, mt := range jsonMediaTypes {
		if m, ok := content.Get(mt); ok && m != nil {
			return m.Schema
		}
	}
	for _, mt := range content.Keys() {
		if m, _ := content.Get(mt); m != nil && m.Schema != nil && hasJSONSuffix(mt) {
			return m.Schema
		}
	}
	return nil
}

func hasJSONSuffix(mediaType string) bool {
	const suffix = "+json"
	return len(mediaType) > len(suffix) && mediaType[len(mediaType)-len(suffix):] == suffix
}
