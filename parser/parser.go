package parser

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/GGROM1/schemantic-sub000/scherrors"
)

// SourceFormat indicates the serialization format of the source document.
type SourceFormat int

const (
	// FormatUnknown means the format could not be determined.
	FormatUnknown SourceFormat = iota
	// FormatYAML means the source was YAML.
	FormatYAML
	// FormatJSON means the source was JSON.
	FormatJSON
)

// String returns the string representation of the source format.
func (f SourceFormat) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// DocumentStats summarizes the size of a parsed document.
type DocumentStats struct {
	// SchemaCount is the number of named component schemas
	SchemaCount int
	// PathCount is the number of declared paths
	PathCount int
	// OperationCount is the number of declared operations
	OperationCount int
}

// ParseResult contains the outcome of parsing a document.
type ParseResult struct {
	// Document is the parsed document
	Document *Document
	// Version is the declared OpenAPI version string (e.g., "3.0.3")
	Version string
	// SourceFormat is the detected serialization format
	SourceFormat SourceFormat
	// SourcePath is the file path the document was loaded from, if any
	SourcePath string
	// SourceSize is the size of the source in bytes
	SourceSize int64
	// LoadTime is the time taken to read and decode the source
	LoadTime time.Duration
	// Stats summarizes the document contents
	Stats DocumentStats
}

// Parser parses OpenAPI documents from files or raw bytes.
type Parser struct {
	// Logger receives debug-level diagnostics during parsing.
	// Defaults to NopLogger.
	Logger Logger
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{Logger: NopLogger{}}
}

// Option configures a parse operation.
type Option func(*parseConfig) error

type parseConfig struct {
	filePath *string
	data     []byte
	logger   Logger
}

// WithFilePath specifies a file path as the input source.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies raw document bytes as the input source.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if len(data) == 0 {
			return &scherrors.ConfigError{Option: "WithBytes", Message: "data cannot be empty"}
		}
		cfg.data = data
		return nil
	}
}

// WithLogger sets the logger used during parsing.
func WithLogger(logger Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = logger
		return nil
	}
}

// ParseWithOptions parses a document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg := &parseConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("parser: invalid options: %w", err)
		}
	}
	if cfg.filePath == nil && cfg.data == nil {
		return nil, &scherrors.ConfigError{Option: "input", Message: "must specify an input source (use WithFilePath or WithBytes)"}
	}
	if cfg.filePath != nil && cfg.data != nil {
		return nil, &scherrors.ConfigError{Option: "input", Message: "must specify exactly one input source"}
	}

	p := &Parser{Logger: cfg.logger}
	if cfg.filePath != nil {
		return p.Parse(*cfg.filePath)
	}
	return p.ParseBytes(cfg.data, "<bytes>")
}

// Parse reads and parses the document at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &scherrors.ParseError{Path: path, Message: "failed to read file", Err: err}
	}
	return p.ParseBytes(data, path)
}

// ParseBytes parses a document from raw bytes. The sourcePath is used only
// for error reporting.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	start := time.Now()
	logger := p.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &scherrors.ParseError{Path: sourcePath, Message: "failed to decode document", Err: err}
	}

	// Structural preconditions: downstream synthesis assumes these hold.
	if doc.OpenAPI == "" {
		return nil, &scherrors.ParseError{Path: sourcePath, Message: "missing required field: openapi"}
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, &scherrors.ParseError{Path: sourcePath, Message: fmt.Sprintf("unsupported OpenAPI version: %s", doc.OpenAPI)}
	}

	result := &ParseResult{
		Document:     &doc,
		Version:      doc.OpenAPI,
		SourceFormat: detectFormat(data),
		SourcePath:   sourcePath,
		SourceSize:   int64(len(data)),
		LoadTime:     time.Since(start),
		Stats: DocumentStats{
			SchemaCount:    doc.SchemaCount(),
			PathCount:      doc.PathCount(),
			OperationCount: doc.OperationCount(),
		},
	}

	logger.Debug("parsed document",
		"path", sourcePath,
		"version", result.Version,
		"schemas", result.Stats.SchemaCount,
		"operations", result.Stats.OperationCount)

	return result, nil
}

// detectFormat guesses the serialization format from the leading bytes.
// JSON documents start with '{' (possibly after whitespace or a BOM).
func detectFormat(data []byte) SourceFormat {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n', 0xEF, 0xBB, 0xBF:
			continue
		case '{':
			return FormatJSON
		default:
			return FormatYAML
		}
	}
	return FormatUnknown
}
