package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GGROM1/schemantic-sub000/parser"
)

type parseInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document to parse"`
}

type parseOutput struct {
	Title          string   `json:"title,omitempty"`
	APIVersion     string   `json:"api_version,omitempty"`
	OpenAPIVersion string   `json:"openapi_version"`
	SourceFormat   string   `json:"source_format"`
	SchemaCount    int      `json:"schema_count"`
	PathCount      int      `json:"path_count"`
	OperationCount int      `json:"operation_count"`
	SchemaNames    []string `json:"schema_names,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := parseSpec(input.Spec)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		OpenAPIVersion: result.Version,
		SourceFormat:   result.SourceFormat.String(),
		SchemaCount:    result.Stats.SchemaCount,
		PathCount:      result.Stats.PathCount,
		OperationCount: result.Stats.OperationCount,
	}
	if info := result.Document.Info; info != nil {
		output.Title = info.Title
		output.APIVersion = info.Version
	}
	if c := result.Document.Components; c != nil {
		output.SchemaNames = c.Schemas.Keys()
	}
	return nil, output, nil
}

// errExclusiveInput is returned when a tool call does not provide exactly
// one document source.
var errExclusiveInput = fmt.Errorf("exactly one of file or content must be provided")

// parseSpec parses the document from whichever input mode was provided.
func parseSpec(spec specInput) (*parser.ParseResult, error) {
	switch {
	case spec.File != "" && spec.Content != "":
		return nil, errExclusiveInput
	case spec.File != "":
		return parser.ParseWithOptions(parser.WithFilePath(spec.File))
	case spec.Content != "":
		return parser.ParseWithOptions(parser.WithBytes([]byte(spec.Content)))
	default:
		return nil, errExclusiveInput
	}
}
