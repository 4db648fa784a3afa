package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GGROM1/schemantic-sub000/generator"
)

type generateInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The OpenAPI document to generate from"`
	Target     string    `json:"target,omitempty"      jsonschema:"Output language: typescript (default) or go"`
	Client     bool      `json:"client,omitempty"      jsonschema:"Generate a fetch client (TypeScript only)"`
	Hooks      bool      `json:"hooks,omitempty"       jsonschema:"Generate React Query hooks (TypeScript only\\, implies client)"`
	Naming     string    `json:"naming,omitempty"      jsonschema:"Member naming convention: lower-camel (default)\\, snake\\, or upper-camel"`
	TypePrefix string    `json:"type_prefix,omitempty" jsonschema:"Verbatim prefix for generated type names"`
	TypeSuffix string    `json:"type_suffix,omitempty" jsonschema:"Verbatim suffix for generated type names"`
	Package    string    `json:"package,omitempty"     jsonschema:"Package name for Go output"`
	OutputDir  string    `json:"output_dir,omitempty"  jsonschema:"Directory to write generated files to. If omitted the files are returned inline."`
	Strict     bool      `json:"strict,omitempty"      jsonschema:"Fail on any issue\\, even warnings"`
}

type generateIssue struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type generatedFile struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

type generateOutput struct {
	Success        bool            `json:"success"`
	Target         string          `json:"target"`
	TypeCount      int             `json:"type_count"`
	OperationCount int             `json:"operation_count"`
	IssueCount     int             `json:"issue_count"`
	Issues         []generateIssue `json:"issues,omitempty"`
	WrittenTo      string          `json:"written_to,omitempty"`
	Files          []generatedFile `json:"files,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	opts, err := buildGeneratorOptions(input)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:        result.Success,
		Target:         result.Target.String(),
		TypeCount:      result.GeneratedTypes,
		OperationCount: result.GeneratedOperations,
		IssueCount:     len(result.Issues),
	}

	output.Issues = makeSlice[generateIssue](len(result.Issues))
	for _, iss := range result.Issues {
		output.Issues = append(output.Issues, generateIssue{
			Severity: iss.Severity.String(),
			Code:     iss.Code,
			Path:     iss.Path,
			Message:  iss.Message,
		})
	}

	if input.OutputDir != "" {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(err), generateOutput{}, nil
		}
		output.WrittenTo = input.OutputDir
		output.Files = makeSlice[generatedFile](len(result.Files))
		for _, f := range result.Files {
			output.Files = append(output.Files, generatedFile{Name: f.Name})
		}
		return nil, output, nil
	}

	output.Files = makeSlice[generatedFile](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFile{Name: f.Name, Content: string(f.Content)})
	}
	return nil, output, nil
}

// buildGeneratorOptions translates the MCP input into generator options.
func buildGeneratorOptions(input generateInput) ([]generator.Option, error) {
	var opts []generator.Option

	switch {
	case input.Spec.File != "" && input.Spec.Content != "":
		return nil, errExclusiveInput
	case input.Spec.File != "":
		opts = append(opts, generator.WithFilePath(input.Spec.File))
	case input.Spec.Content != "":
		parsed, err := parseSpec(input.Spec)
		if err != nil {
			return nil, err
		}
		opts = append(opts, generator.WithParsed(*parsed))
	default:
		return nil, errExclusiveInput
	}

	target, err := generator.ParseTarget(input.Target)
	if err != nil {
		return nil, err
	}
	opts = append(opts, generator.WithTarget(target))

	if input.Naming != "" {
		opts = append(opts, generator.WithNamingConvention(input.Naming))
	}
	if input.TypePrefix != "" {
		opts = append(opts, generator.WithTypePrefix(input.TypePrefix))
	}
	if input.TypeSuffix != "" {
		opts = append(opts, generator.WithTypeSuffix(input.TypeSuffix))
	}
	if input.Package != "" {
		opts = append(opts, generator.WithPackageName(input.Package))
	}
	if input.Client {
		opts = append(opts, generator.WithClient(true))
	}
	if input.Hooks {
		opts = append(opts, generator.WithHooks(true))
	}
	if input.Strict {
		opts = append(opts, generator.WithStrictMode(true))
	}
	// Inline tool output should not carry a README.
	opts = append(opts, generator.WithReadme(input.OutputDir != ""))

	return opts, nil
}
