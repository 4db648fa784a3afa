package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	schemantic "github.com/GGROM1/schemantic-sub000"
	"github.com/GGROM1/schemantic-sub000/generator"
	"github.com/GGROM1/schemantic-sub000/internal/mcpserver"
	"github.com/GGROM1/schemantic-sub000/parser"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("schemantic v%s\n", schemantic.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := handleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if err := handleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// generateFlags contains flags for the generate command
type generateFlags struct {
	output     string
	target     string
	naming     string
	typePrefix string
	typeSuffix string
	pkg        string
	client     bool
	hooks      bool
	strict     bool
	noInfo     bool
	noReadme   bool
	mappings   map[string]string
}

func setupGenerateFlags() (*flag.FlagSet, *generateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &generateFlags{mappings: make(map[string]string)}

	fs.StringVar(&flags.output, "o", "", "output directory (required)")
	fs.StringVar(&flags.output, "output", "", "output directory (required)")
	fs.StringVar(&flags.target, "t", "", "output language: typescript (default) or go")
	fs.StringVar(&flags.target, "target", "", "output language: typescript (default) or go")
	fs.StringVar(&flags.naming, "naming", "", "member naming convention: lower-camel (default), snake, upper-camel")
	fs.StringVar(&flags.typePrefix, "type-prefix", "", "verbatim prefix for generated type names")
	fs.StringVar(&flags.typeSuffix, "type-suffix", "", "verbatim suffix for generated type names")
	fs.StringVar(&flags.pkg, "package", "", "package name for go output (default: api)")
	fs.BoolVar(&flags.client, "client", false, "generate a fetch client (typescript only)")
	fs.BoolVar(&flags.hooks, "hooks", false, "generate React Query hooks (typescript only, implies -client)")
	fs.BoolVar(&flags.strict, "strict", false, "fail on any issue (even warnings)")
	fs.BoolVar(&flags.noInfo, "no-info", false, "suppress informational messages")
	fs.BoolVar(&flags.noReadme, "no-readme", false, "skip README.md generation")
	fs.Func("map", "custom type mapping key=target (e.g., date-time=Date), repeatable", func(v string) error {
		key, target, ok := strings.Cut(v, "=")
		if !ok || key == "" || target == "" {
			return fmt.Errorf("mapping must have the form key=target, got %q", v)
		}
		flags.mappings[key] = target
		return nil
	})

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: schemantic generate [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Generate typed model code from an OpenAPI 3.x document.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  schemantic generate -o ./gen openapi.yaml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  schemantic generate -o ./gen -client -hooks openapi.yaml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  schemantic generate -o ./gen -t go -package petstore openapi.yaml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  schemantic generate -o ./gen -map date-time=Date -type-prefix Api openapi.yaml\n")
	}

	return fs, flags
}

func handleGenerate(args []string) error {
	fs, flags := setupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path")
	}
	if flags.output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	specPath := fs.Arg(0)

	target, err := generator.ParseTarget(flags.target)
	if err != nil {
		return err
	}

	opts := []generator.Option{
		generator.WithFilePath(specPath),
		generator.WithTarget(target),
		generator.WithClient(flags.client),
		generator.WithHooks(flags.hooks),
		generator.WithStrictMode(flags.strict),
		generator.WithIncludeInfo(!flags.noInfo),
		generator.WithReadme(!flags.noReadme),
	}
	if flags.naming != "" {
		opts = append(opts, generator.WithNamingConvention(flags.naming))
	}
	if flags.typePrefix != "" {
		opts = append(opts, generator.WithTypePrefix(flags.typePrefix))
	}
	if flags.typeSuffix != "" {
		opts = append(opts, generator.WithTypeSuffix(flags.typeSuffix))
	}
	if flags.pkg != "" {
		opts = append(opts, generator.WithPackageName(flags.pkg))
	}
	for key, mapped := range flags.mappings {
		opts = append(opts, generator.WithTypeMapping(key, mapped))
	}

	startTime := time.Now()
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}
	if err := result.WriteFiles(flags.output); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	totalTime := time.Since(startTime)

	fmt.Printf("Schema Type Generator\n")
	fmt.Printf("=====================\n\n")
	fmt.Printf("schemantic version: %s\n", schemantic.Version())
	fmt.Printf("Specification: %s\n", specPath)
	fmt.Printf("OpenAPI Version: %s\n", result.SourceVersion)
	fmt.Printf("Target: %s\n", result.Target)
	fmt.Printf("Output: %s\n", flags.output)
	fmt.Printf("Types: %d\n", result.GeneratedTypes)
	fmt.Printf("Operations: %d\n", result.GeneratedOperations)
	fmt.Printf("Load Time: %v\n", result.LoadTime)
	fmt.Printf("Total Time: %v\n\n", totalTime)

	if len(result.Issues) > 0 {
		fmt.Printf("Generation Issues (%d):\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Printf("  %s\n", issue.String())
		}
		fmt.Println()
	}

	for _, f := range result.Files {
		fmt.Printf("  wrote %s (%d bytes)\n", f.Name, len(f.Content))
	}
	fmt.Println()

	if result.Success {
		fmt.Printf("✓ Generation successful")
		if result.InfoCount > 0 || result.WarningCount > 0 {
			fmt.Printf(" (%d info, %d warnings)", result.InfoCount, result.WarningCount)
		}
		fmt.Println()
	} else {
		fmt.Printf("✗ Generation completed with %d error(s), %d critical issue(s)\n",
			result.ErrorCount, result.CriticalCount)
		os.Exit(1)
	}

	return nil
}

func setupParseFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: schemantic parse <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Parse an OpenAPI 3.x document and display its structure.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Examples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  schemantic parse openapi.yaml\n")
	}
	return fs
}

func handleParse(args []string) error {
	fs := setupParseFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path")
	}

	specPath := fs.Arg(0)

	result, err := parser.ParseWithOptions(parser.WithFilePath(specPath))
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}

	fmt.Printf("OpenAPI Document Parser\n")
	fmt.Printf("=======================\n\n")
	fmt.Printf("schemantic version: %s\n", schemantic.Version())
	fmt.Printf("Specification: %s\n", specPath)
	fmt.Printf("OpenAPI Version: %s\n", result.Version)
	fmt.Printf("Source Format: %s\n", result.SourceFormat)
	fmt.Printf("Source Size: %d bytes\n", result.SourceSize)
	fmt.Printf("Schemas: %d\n", result.Stats.SchemaCount)
	fmt.Printf("Paths: %d\n", result.Stats.PathCount)
	fmt.Printf("Operations: %d\n", result.Stats.OperationCount)
	fmt.Printf("Load Time: %v\n\n", result.LoadTime)

	if info := result.Document.Info; info != nil {
		fmt.Printf("Title: %s\n", info.Title)
		if info.Description != "" {
			fmt.Printf("Description: %s\n", info.Description)
		}
		fmt.Printf("API Version: %s\n", info.Version)
	}

	if c := result.Document.Components; c != nil && c.Schemas.Len() > 0 {
		fmt.Printf("\nNamed Schemas:\n")
		for _, name := range c.Schemas.Keys() {
			fmt.Printf("  - %s\n", name)
		}
	}

	fmt.Printf("\nParsing completed successfully!\n")
	return nil
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

func printUsage() {
	fmt.Println(`schemantic - OpenAPI Schema Resolution & Type Synthesis

Usage:
  schemantic <command> [options]

Commands:
  generate    Generate typed model code from an OpenAPI document
  parse       Parse and display an OpenAPI document's structure
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  schemantic generate -o ./gen openapi.yaml
  schemantic generate -o ./gen -client -hooks openapi.yaml
  schemantic generate -o ./gen -t go -package petstore openapi.yaml
  schemantic parse openapi.yaml

Run 'schemantic <command> --help' for more information on a command.`)
}
