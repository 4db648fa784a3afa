package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/internal/severity"
	"github.com/GGROM1/schemantic-sub000/parser"
)

const crudDoc = `
openapi: "3.0.3"
info:
  title: CRUD
  version: "1.0.0"
paths:
  /users:
    get:
      summary: List users
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/User'
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/User'
      responses:
        "201":
          description: Created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
  /users/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: string
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
        "404":
          description: Not found
    delete:
      operationId: removeUser
      responses:
        "204":
          description: Deleted
components:
  schemas:
    User:
      type: object
      properties:
        id:
          type: string
      required: [id]
`

func extractOver(t *testing.T, src string, cfg Config) (*Run, []EndpointDescriptor) {
	t.Helper()
	r := NewRun(mustDocument(t, src), cfg)
	_, err := r.SynthesizeDocument()
	require.NoError(t, err)
	eps, err := r.ExtractEndpoints()
	require.NoError(t, err)
	return r, eps
}

func TestExtractEndpointsOrderAndNames(t *testing.T) {
	_, eps := extractOver(t, crudDoc, Config{})
	require.Len(t, eps, 4)

	// Paths in document order, methods in canonical order within a path.
	assert.Equal(t, "getUsers", eps[0].FuncName)
	assert.Equal(t, "GET", eps[0].Method)
	assert.Equal(t, "postUsers", eps[1].FuncName)
	assert.Equal(t, "POST", eps[1].Method)

	// GET /users/{id}: parameterized resource is singularized.
	assert.Equal(t, "getUser", eps[2].FuncName)
	assert.Equal(t, "/users/{id}", eps[2].Path)

	// An explicit operation id always wins.
	assert.Equal(t, "removeUser", eps[3].FuncName)
	assert.Equal(t, "DELETE", eps[3].Method)
}

func TestExtractEndpointParams(t *testing.T) {
	_, eps := extractOver(t, crudDoc, Config{})

	list := eps[0]
	require.Len(t, list.Params, 1)
	assert.Equal(t, "limit", list.Params[0].Name)
	assert.Equal(t, "query", list.Params[0].Location)
	assert.False(t, list.Params[0].Required)
	assert.Equal(t, PrimInteger, list.Params[0].Type.Name)

	// Path-item level parameters apply to every operation underneath.
	get := eps[2]
	require.Len(t, get.Params, 1)
	assert.Equal(t, "id", get.Params[0].Name)
	assert.Equal(t, "path", get.Params[0].Location)
	assert.True(t, get.Params[0].Required)
}

func TestExtractEndpointRequestBody(t *testing.T) {
	_, eps := extractOver(t, crudDoc, Config{})

	create := eps[1]
	require.NotNil(t, create.RequestBody)
	assert.True(t, create.RequestBodyRequired)
	assert.Equal(t, ExprNamed, create.RequestBody.Kind)
	assert.Equal(t, "User", create.RequestBody.Name)

	assert.Nil(t, eps[0].RequestBody)
}

// A response with no content is void; multiple responses union.
func TestExtractEndpointReturnTypes(t *testing.T) {
	_, eps := extractOver(t, crudDoc, Config{})

	list := eps[0]
	require.Equal(t, ExprArray, list.ReturnType.Kind)
	assert.Equal(t, "User", list.ReturnType.Elem.Name)

	get := eps[2]
	require.Len(t, get.Responses, 2)
	assert.Equal(t, "200", get.Responses[0].Status)
	assert.Equal(t, "404", get.Responses[1].Status)
	assert.Equal(t, ExprVoid, get.Responses[1].Type.Kind)

	require.Equal(t, ExprUnion, get.ReturnType.Kind)
	require.Len(t, get.ReturnType.Members, 2)
	assert.Equal(t, "User", get.ReturnType.Members[0].Name)
	assert.Equal(t, ExprVoid, get.ReturnType.Members[1].Kind)

	del := eps[3]
	require.Len(t, del.Responses, 1)
	assert.Equal(t, ExprVoid, del.ReturnType.Kind)
}

func TestExtractPathParamMismatch(t *testing.T) {
	r, eps := extractOver(t, `
openapi: "3.0.3"
info:
  title: Bad
  version: "1.0.0"
paths:
  /orders/{orderId}:
    get:
      responses:
        "200":
          description: OK
`, Config{})
	require.Len(t, eps, 1)

	var found bool
	for _, iss := range r.Issues() {
		if iss.Code == CodePathParamMismatch {
			found = true
			assert.Equal(t, severity.SeverityError, iss.Severity)
			assert.Equal(t, "orderId", iss.Value)
		}
	}
	assert.True(t, found)
}

// $ref-valued parameters are skipped with a warning, never resolved.
func TestExtractRefParamSkipped(t *testing.T) {
	r, eps := extractOver(t, `
openapi: "3.0.3"
info:
  title: RefParam
  version: "1.0.0"
paths:
  /things:
    get:
      parameters:
        - $ref: '#/components/parameters/PageSize'
        - name: q
          in: query
          schema:
            type: string
      responses:
        "200":
          description: OK
`, Config{})
	require.Len(t, eps, 1)
	require.Len(t, eps[0].Params, 1)
	assert.Equal(t, "q", eps[0].Params[0].Name)

	var sawSkip bool
	for _, iss := range r.Issues() {
		if iss.Code == issues.CodeUnsupportedShape && iss.Severity == severity.SeverityWarning {
			sawSkip = true
		}
	}
	assert.True(t, sawSkip)
}

func TestFuncNameDerivation(t *testing.T) {
	tests := []struct {
		method, path, expected string
	}{
		{"get", "/users", "getUsers"},
		{"get", "/users/{id}", "getUser"},
		{"post", "/users", "postUsers"},
		{"put", "/users/{id}", "putUser"},
		{"delete", "/users/{id}", "deleteUser"},
		{"get", "/users/{id}/orders", "getUserOrders"},
		{"get", "/users/{id}/orders/{orderId}", "getUserOrder"},
		{"get", "/categories/{id}", "getCategory"},
		{"get", "/statuses/{id}", "getStatus"},
		{"get", "/", "get"},
	}

	r := NewRun(mustDocument(t, crudDoc), Config{})
	op := &parser.Operation{}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.funcName(op, tt.path, tt.method))
		})
	}
}

func TestPathPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"id", "orderId"}, pathPlaceholders("/users/{id}/orders/{orderId}"))
	assert.Nil(t, pathPlaceholders("/users"))
	assert.Nil(t, pathPlaceholders("/odd/{}"))
}
