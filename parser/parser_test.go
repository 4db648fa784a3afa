package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      operationId: createPet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        '201':
          description: Created
  /pets/{petId}:
    get:
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: integer
            format: int64
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
        tag:
          type: string
    Error:
      type: object
      properties:
        code:
          type: integer
        message:
          type: string
`

func TestParseBytes(t *testing.T) {
	result, err := ParseWithOptions(WithBytes([]byte(petstoreYAML)))
	require.NoError(t, err)
	require.NotNil(t, result.Document)

	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, FormatYAML, result.SourceFormat)
	assert.Equal(t, int64(len(petstoreYAML)), result.SourceSize)

	assert.Equal(t, 2, result.Stats.SchemaCount)
	assert.Equal(t, 2, result.Stats.PathCount)
	assert.Equal(t, 3, result.Stats.OperationCount)

	pet, ok := result.Document.Components.Schemas.Get("Pet")
	require.True(t, ok)
	assert.Equal(t, "object", pet.Type)
	assert.Equal(t, []string{"id", "name", "tag"}, pet.Properties.Keys())
	assert.True(t, pet.IsRequired("id"))
	assert.False(t, pet.IsRequired("tag"))
}

func TestParseJSON(t *testing.T) {
	doc := `{
  "openapi": "3.1.0",
  "info": {"title": "t", "version": "1"},
  "paths": {},
  "components": {"schemas": {"A": {"type": "string"}}}
}`
	result, err := ParseWithOptions(WithBytes([]byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, result.SourceFormat)
	assert.Equal(t, 1, result.Stats.SchemaCount)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid yaml", ":\n  - ["},
		{"missing openapi field", "info:\n  title: t"},
		{"swagger 2.0", "swagger: '2.0'\ninfo: {title: t, version: '1'}"},
		{"unsupported version", "openapi: 4.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(WithBytes([]byte(tt.input)))
			assert.Error(t, err)
		})
	}
}

func TestParseOptionValidation(t *testing.T) {
	_, err := ParseWithOptions()
	assert.Error(t, err, "no input source")

	_, err = ParseWithOptions(WithBytes(nil))
	assert.Error(t, err, "empty bytes")

	_, err = ParseWithOptions(WithBytes([]byte("openapi: 3.0.0")), WithFilePath("x.yaml"))
	assert.Error(t, err, "two input sources")
}

func TestParseMissingFile(t *testing.T) {
	_, err := ParseWithOptions(WithFilePath("does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestOperationsOrder(t *testing.T) {
	result, err := ParseWithOptions(WithBytes([]byte(petstoreYAML)))
	require.NoError(t, err)

	item, ok := result.Document.Paths.Get("/pets")
	require.True(t, ok)

	ops := item.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, MethodGet, ops[0].Method)
	assert.Equal(t, MethodPost, ops[1].Method)
	assert.Equal(t, "listPets", ops[0].Operation.OperationID)
}

func bodyContent(pairs ...any) *OrderedMap[*MediaType] {
	m := NewOrderedMap[*MediaType]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(*MediaType))
	}
	return m
}

func TestBodySchema(t *testing.T) {
	jsonSchema := &Schema{Type: "string"}
	xmlSchema := &Schema{Type: "object"}

	assert.Nil(t, BodySchema(nil))
	assert.Equal(t, jsonSchema, BodySchema(bodyContent(
		"application/json", &MediaType{Schema: jsonSchema},
		"application/xml", &MediaType{Schema: xmlSchema},
	)))
	assert.Equal(t, jsonSchema, BodySchema(bodyContent(
		"application/vnd.acme+json", &MediaType{Schema: jsonSchema},
	)))
	assert.Nil(t, BodySchema(bodyContent(
		"application/xml", &MediaType{Schema: xmlSchema},
	)))
}

func TestBodySchemaFallbackIsDeclarationOrdered(t *testing.T) {
	strSchema := &Schema{Type: "string"}
	intSchema := &Schema{Type: "integer"}

	content := bodyContent(
		"application/hal+json", &MediaType{Schema: strSchema},
		"application/vnd.x+json", &MediaType{Schema: intSchema},
	)
	for i := 0; i < 100; i++ {
		assert.Equal(t, strSchema, BodySchema(content))
	}

	reversed := bodyContent(
		"application/vnd.x+json", &MediaType{Schema: intSchema},
		"application/hal+json", &MediaType{Schema: strSchema},
	)
	assert.Equal(t, intSchema, BodySchema(reversed))
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, detectFormat([]byte("  {\"openapi\": \"3.0.0\"}")))
	assert.Equal(t, FormatYAML, detectFormat([]byte("openapi: 3.0.0")))
	assert.Equal(t, FormatUnknown, detectFormat([]byte("   ")))
}
