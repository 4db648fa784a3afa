package generator

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GGROM1/schemantic-sub000/parser"
)

// titleCaser renders human-facing headings; it never touches identifiers.
var titleCaser = cases.Title(language.English)

// readmeData carries everything the README template needs.
type readmeData struct {
	Title          string
	APIVersion     string
	APIDescription string
	SourcePath     string
	SourceVersion  string
	Target         string
	Timestamp      time.Time
	Stats          parser.DocumentStats
	Files          []readmeFileSummary
	TypeCount      int
	OperationCount int
	CLICommand     string
}

type readmeFileSummary struct {
	Name        string
	Description string
}

// readmeContext assembles the README data from the generation inputs.
func readmeContext(g *Generator, parseResult parser.ParseResult, result *GenerateResult) readmeData {
	data := readmeData{
		Title:          "Generated API",
		SourcePath:     parseResult.SourcePath,
		SourceVersion:  parseResult.Version,
		Target:         g.Target.String(),
		Timestamp:      time.Now().UTC(),
		Stats:          parseResult.Stats,
		TypeCount:      result.GeneratedTypes,
		OperationCount: result.GeneratedOperations,
		CLICommand:     regenerateCommand(g, parseResult.SourcePath),
	}
	if info := parseResult.Document.Info; info != nil {
		if info.Title != "" {
			data.Title = titleCaser.String(info.Title)
		}
		data.APIVersion = info.Version
		data.APIDescription = info.Description
	}
	for _, f := range result.Files {
		data.Files = append(data.Files, readmeFileSummary{
			Name:        f.Name,
			Description: fileDescription(f.Name),
		})
	}
	return data
}

func fileDescription(name string) string {
	switch name {
	case "types.ts", "types.go":
		return "Model types synthesized from the document's named schemas"
	case "client.ts":
		return "Fetch-based API client with one method per operation"
	case "hooks.ts":
		return "React Query hooks wrapping the generated client"
	default:
		return "Generated artifact"
	}
}

// regenerateCommand reconstructs the CLI invocation that reproduces this
// output.
func regenerateCommand(g *Generator, sourcePath string) string {
	parts := []string{"schemantic generate", "-input " + sourcePath, "-target " + g.Target.String()}
	if g.NamingConvention != "" {
		parts = append(parts, "-naming "+g.NamingConvention)
	}
	if g.TypePrefix != "" {
		parts = append(parts, "-type-prefix "+g.TypePrefix)
	}
	if g.TypeSuffix != "" {
		parts = append(parts, "-type-suffix "+g.TypeSuffix)
	}
	if g.GenerateClient {
		parts = append(parts, "-client")
	}
	if g.GenerateHooks {
		parts = append(parts, "-hooks")
	}
	return strings.Join(parts, " ")
}

// renderReadme emits a README.md describing the generated artifacts.
func renderReadme(data readmeData) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", data.Title)
	if data.APIDescription != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(data.APIDescription))
	}

	b.WriteString("Generated by schemantic. Do not edit these files by hand; regenerate instead.\n\n")

	b.WriteString("## Source\n\n")
	fmt.Fprintf(&b, "- Document: `%s` (OpenAPI %s)\n", data.SourcePath, data.SourceVersion)
	if data.APIVersion != "" {
		fmt.Fprintf(&b, "- API version: %s\n", data.APIVersion)
	}
	fmt.Fprintf(&b, "- Schemas: %d, paths: %d, operations: %d\n", data.Stats.SchemaCount, data.Stats.PathCount, data.Stats.OperationCount)
	fmt.Fprintf(&b, "- Generated: %s\n\n", data.Timestamp.Format(time.RFC3339))

	b.WriteString("## Files\n\n")
	for _, f := range data.Files {
		if f.Name == "README.md" {
			continue
		}
		fmt.Fprintf(&b, "- `%s`: %s\n", f.Name, f.Description)
	}
	fmt.Fprintf(&b, "\nGenerated %d types and %d operations for the %s target.\n\n", data.TypeCount, data.OperationCount, data.Target)

	b.WriteString("## Regenerate\n\n")
	fmt.Fprintf(&b, "```sh\n%s\n```\n", data.CLICommand)

	return b.Bytes()
}
