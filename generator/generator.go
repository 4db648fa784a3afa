package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GGROM1/schemantic-sub000/internal/issues"
	"github.com/GGROM1/schemantic-sub000/internal/severity"
	"github.com/GGROM1/schemantic-sub000/parser"
	"github.com/GGROM1/schemantic-sub000/scherrors"
	"github.com/GGROM1/schemantic-sub000/synth"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates features that may not generate perfectly
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates schema resolution errors
	SeverityError = severity.SeverityError
	// SeverityCritical indicates features that cannot be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// Target selects the emitted language.
type Target int

const (
	// TargetTypeScript emits TypeScript model types and, optionally, a
	// fetch client and React Query hooks.
	TargetTypeScript Target = iota
	// TargetGo emits Go model types formatted with goimports.
	TargetGo
)

// String returns the configuration spelling of the target.
func (t Target) String() string {
	switch t {
	case TargetGo:
		return "go"
	default:
		return "typescript"
	}
}

// ParseTarget maps a configuration string to a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "", "typescript", "ts":
		return TargetTypeScript, nil
	case "go", "golang":
		return TargetGo, nil
	default:
		return TargetTypeScript, fmt.Errorf("unknown target: %q", s)
	}
}

// PostProcessFunc may rewrite a generated file before it is added to the
// result. Returning an error aborts generation.
type PostProcessFunc func(name string, content []byte) ([]byte, error)

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.ts", "client.ts")
	Name string
	// Content is the generated source code
	Content []byte
}

// GenerateResult contains the results of generating code from a document
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// SourceVersion is the declared OpenAPI version string
	SourceVersion string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// Target is the emitted language
	Target Target
	// Issues contains all generation issues in discovery order
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of errors
	ErrorCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	// (without errors or warnings either, in strict mode)
	Success bool
	// LoadTime is the time taken to read and decode the source
	LoadTime time.Duration
	// GenerateTime is the time taken to synthesize and emit code
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the source document
	Stats parser.DocumentStats
	// GeneratedTypes is the count of named types generated
	GeneratedTypes int
	// GeneratedOperations is the count of operations generated
	GeneratedOperations int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, file := range r.Files {
		if filepath.Base(file.Name) != file.Name {
			return fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		if err := os.WriteFile(filepath.Join(outputDir, file.Name), file.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}

// Generator renders a parsed document into target source files.
type Generator struct {
	// Target is the emitted language. Default: TypeScript.
	Target Target

	// PackageName is the package name for Go output. Default: "api".
	PackageName string

	// NamingConvention is the member naming convention
	// ("lower-camel", "snake", "upper-camel"). Default: lower-camel.
	NamingConvention string

	// TypePrefix is prepended verbatim to every generated type name.
	TypePrefix string

	// TypeSuffix is appended verbatim to every generated type name.
	TypeSuffix string

	// CustomTypeMappings maps a schema format or type keyword to a target
	// type name emitted verbatim.
	CustomTypeMappings map[string]string

	// GenerateClient enables fetch client generation (TypeScript only).
	GenerateClient bool

	// GenerateHooks enables React Query hook generation (TypeScript only).
	// Implies GenerateClient.
	GenerateHooks bool

	// GenerateReadme enables README.md generation alongside the code.
	// Default: true.
	GenerateReadme bool

	// StrictMode causes Success to be false on any issue (even warnings)
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// SchemaTransform, when set, may rewrite schema nodes before synthesis.
	SchemaTransform func(*parser.Schema) *parser.Schema

	// PostProcess hooks run over each generated file, in order.
	PostProcess []PostProcessFunc

	// Logger receives debug-level diagnostics. Defaults to NopLogger.
	Logger parser.Logger
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	target           Target
	packageName      string
	namingConvention string
	typePrefix       string
	typeSuffix       string
	typeMappings     map[string]string
	generateClient   bool
	generateHooks    bool
	generateReadme   bool
	strictMode       bool
	includeInfo      bool
	schemaTransform  func(*parser.Schema) *parser.Schema
	postProcess      []PostProcessFunc
	logger           parser.Logger
}

// GenerateWithOptions generates code from an OpenAPI document using
// functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithClient(true),
//	    generator.WithTypePrefix("Api"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		Target:             cfg.target,
		PackageName:        cfg.packageName,
		NamingConvention:   cfg.namingConvention,
		TypePrefix:         cfg.typePrefix,
		TypeSuffix:         cfg.typeSuffix,
		CustomTypeMappings: cfg.typeMappings,
		GenerateClient:     cfg.generateClient,
		GenerateHooks:      cfg.generateHooks,
		GenerateReadme:     cfg.generateReadme,
		StrictMode:         cfg.strictMode,
		IncludeInfo:        cfg.includeInfo,
		SchemaTransform:    cfg.schemaTransform,
		PostProcess:        cfg.postProcess,
		Logger:             cfg.logger,
	}

	if cfg.filePath != nil {
		return g.Generate(*cfg.filePath)
	}
	return g.GenerateParsed(*cfg.parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		target:           TargetTypeScript,
		packageName:      "api",
		namingConvention: "",
		generateClient:   false,
		generateHooks:    false,
		generateReadme:   true,
		strictMode:       false,
		includeInfo:      true,
		logger:           parser.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.filePath == nil && cfg.parsed == nil {
		return nil, &scherrors.ConfigError{Option: "input", Message: "must specify an input source (use WithFilePath or WithParsed)"}
	}
	if cfg.filePath != nil && cfg.parsed != nil {
		return nil, &scherrors.ConfigError{Option: "input", Message: "must specify exactly one input source"}
	}
	if _, err := synth.ParseConvention(cfg.namingConvention); err != nil {
		return nil, &scherrors.ConfigError{Option: "WithNamingConvention", Message: err.Error()}
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result.Document == nil {
			return &scherrors.ConfigError{Option: "WithParsed", Message: "parse result has no document"}
		}
		cfg.parsed = &result
		return nil
	}
}

// WithTarget selects the emitted language
func WithTarget(target Target) Option {
	return func(cfg *generateConfig) error {
		cfg.target = target
		return nil
	}
}

// WithPackageName sets the package name used for Go output
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return &scherrors.ConfigError{Option: "WithPackageName", Message: "package name cannot be empty"}
		}
		cfg.packageName = name
		return nil
	}
}

// WithNamingConvention sets the member naming convention
// ("lower-camel", "snake", "upper-camel")
func WithNamingConvention(convention string) Option {
	return func(cfg *generateConfig) error {
		cfg.namingConvention = convention
		return nil
	}
}

// WithTypePrefix sets a verbatim prefix for generated type names
func WithTypePrefix(prefix string) Option {
	return func(cfg *generateConfig) error {
		cfg.typePrefix = prefix
		return nil
	}
}

// WithTypeSuffix sets a verbatim suffix for generated type names
func WithTypeSuffix(suffix string) Option {
	return func(cfg *generateConfig) error {
		cfg.typeSuffix = suffix
		return nil
	}
}

// WithTypeMapping maps a schema format or type keyword to a target type
// name emitted verbatim (e.g., "date-time" -> "Date")
func WithTypeMapping(key, target string) Option {
	return func(cfg *generateConfig) error {
		if key == "" || target == "" {
			return &scherrors.ConfigError{Option: "WithTypeMapping", Message: "key and target cannot be empty"}
		}
		if cfg.typeMappings == nil {
			cfg.typeMappings = make(map[string]string)
		}
		cfg.typeMappings[key] = target
		return nil
	}
}

// WithClient enables fetch client generation (TypeScript only)
func WithClient(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateClient = enabled
		return nil
	}
}

// WithHooks enables React Query hook generation (TypeScript only).
// Implies client generation.
func WithHooks(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateHooks = enabled
		if enabled {
			cfg.generateClient = true
		}
		return nil
	}
}

// WithReadme enables or disables README.md generation
func WithReadme(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateReadme = enabled
		return nil
	}
}

// WithStrictMode causes Success to be false on any issue (even warnings)
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo determines whether informational messages are reported
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithSchemaTransform installs a hook that may rewrite schema nodes before
// synthesis. It must be pure: node in, node out.
func WithSchemaTransform(fn func(*parser.Schema) *parser.Schema) Option {
	return func(cfg *generateConfig) error {
		cfg.schemaTransform = fn
		return nil
	}
}

// WithPostProcess appends a hook that may rewrite each generated file
func WithPostProcess(fn PostProcessFunc) Option {
	return func(cfg *generateConfig) error {
		if fn == nil {
			return &scherrors.ConfigError{Option: "WithPostProcess", Message: "hook cannot be nil"}
		}
		cfg.postProcess = append(cfg.postProcess, fn)
		return nil
	}
}

// WithLogger sets the logger used during generation
func WithLogger(logger parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = logger
		return nil
	}
}

// Generate parses the document at specPath and generates code from it.
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	p := parser.New()
	if g.Logger != nil {
		p.Logger = g.Logger
	}
	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, err
	}
	return g.GenerateParsed(*parseResult)
}

// GenerateParsed generates code from an already parsed document.
func (g *Generator) GenerateParsed(parseResult parser.ParseResult) (*GenerateResult, error) {
	start := time.Now()
	if parseResult.Document == nil {
		return nil, &scherrors.GenerationError{Target: g.Target.String(), Message: "parse result has no document"}
	}
	logger := g.Logger
	if logger == nil {
		logger = parser.NopLogger{}
	}

	convention, err := synth.ParseConvention(g.NamingConvention)
	if err != nil {
		return nil, &scherrors.ConfigError{Option: "NamingConvention", Message: err.Error()}
	}

	run := synth.NewRun(parseResult.Document, synth.Config{
		NamingConvention:   convention,
		TypePrefix:         g.TypePrefix,
		TypeSuffix:         g.TypeSuffix,
		CustomTypeMappings: g.CustomTypeMappings,
		SchemaTransform:    g.SchemaTransform,
		Logger:             logger,
	})

	registry, err := run.SynthesizeDocument()
	if err != nil {
		return nil, err
	}

	var endpoints []synth.EndpointDescriptor
	if g.GenerateClient || g.GenerateHooks {
		endpoints, err = run.ExtractEndpoints()
		if err != nil {
			return nil, err
		}
	}

	result := &GenerateResult{
		SourceVersion: parseResult.Version,
		SourceFormat:  parseResult.SourceFormat,
		Target:        g.Target,
		LoadTime:      parseResult.LoadTime,
		SourceSize:    parseResult.SourceSize,
		Stats:         parseResult.Stats,
	}

	result.GeneratedTypes = registry.Len()
	result.GeneratedOperations = len(endpoints)

	emitIssues := g.emit(result, parseResult, registry, endpoints, convention)
	result.collectIssues(append(run.Issues(), emitIssues...), g.IncludeInfo)
	result.Success = !result.HasCriticalIssues() && result.ErrorCount == 0
	if g.StrictMode && (result.WarningCount > 0 || result.ErrorCount > 0 || result.CriticalCount > 0) {
		result.Success = false
	}

	if err := g.postProcess(result); err != nil {
		return nil, err
	}

	result.GenerateTime = time.Since(start)
	logger.Debug("generation complete",
		"target", g.Target.String(),
		"files", len(result.Files),
		"types", result.GeneratedTypes,
		"operations", result.GeneratedOperations,
		"issues", len(result.Issues))
	return result, nil
}

// emit renders the per-target files and README onto result.
func (g *Generator) emit(result *GenerateResult, parseResult parser.ParseResult, registry *synth.Registry, endpoints []synth.EndpointDescriptor, convention synth.Convention) []GenerateIssue {
	var emitted []GenerateIssue

	switch g.Target {
	case TargetGo:
		content, goIssues := renderGoTypes(g.packageNameOrDefault(), registry)
		result.Files = append(result.Files, GeneratedFile{Name: "types.go", Content: content})
		emitted = append(emitted, goIssues...)
		if g.GenerateClient || g.GenerateHooks {
			emitted = append(emitted, GenerateIssue{
				Code:     issues.CodeUnsupportedShape,
				Path:     "generator",
				Message:  "client and hook generation are TypeScript-only; skipped for the go target",
				Severity: SeverityWarning,
			})
		}
	default:
		result.Files = append(result.Files, GeneratedFile{Name: "types.ts", Content: renderTypeScriptTypes(registry)})
		if g.GenerateClient {
			result.Files = append(result.Files, GeneratedFile{Name: "client.ts", Content: renderTypeScriptClient(registry, endpoints, convention)})
			emitted = append(emitted, clientSkippedParams(endpoints)...)
		}
		if g.GenerateHooks {
			result.Files = append(result.Files, GeneratedFile{Name: "hooks.ts", Content: renderTypeScriptHooks(endpoints)})
		}
	}

	if g.GenerateReadme {
		result.Files = append(result.Files, GeneratedFile{
			Name:    "README.md",
			Content: renderReadme(readmeContext(g, parseResult, result)),
		})
	}
	return emitted
}

func (g *Generator) packageNameOrDefault() string {
	if g.PackageName == "" {
		return "api"
	}
	return g.PackageName
}

// postProcess runs the configured hooks over every generated file.
func (g *Generator) postProcess(result *GenerateResult) error {
	for _, hook := range g.PostProcess {
		for i := range result.Files {
			content, err := hook(result.Files[i].Name, result.Files[i].Content)
			if err != nil {
				return &scherrors.GenerationError{
					Target:  g.Target.String(),
					Message: fmt.Sprintf("post-process hook failed for %s", result.Files[i].Name),
					Err:     err,
				}
			}
			result.Files[i].Content = content
		}
	}
	return nil
}

// collectIssues stores the issue list and per-severity counts, filtering
// info messages when they are not wanted.
func (r *GenerateResult) collectIssues(all []GenerateIssue, includeInfo bool) {
	for _, iss := range all {
		if iss.Severity == SeverityInfo && !includeInfo {
			continue
		}
		r.Issues = append(r.Issues, iss)
		switch iss.Severity {
		case SeverityInfo:
			r.InfoCount++
		case SeverityWarning:
			r.WarningCount++
		case SeverityError:
			r.ErrorCount++
		case SeverityCritical:
			r.CriticalCount++
		}
	}
}
