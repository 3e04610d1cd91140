package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restoas/oaserrors"
)

// SourceFormat represents the format of the source OpenAPI specification
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Parser handles OpenAPI specification parsing
type Parser struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

// ParseResult contains a parsed document and where it came from.
type ParseResult struct {
	// SourcePath is the path or URI the document was read from. For byte
	// input it is "ParseBytes.json" or "ParseBytes.yaml".
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the version string found in the document (e.g., "2.0", "3.0.3")
	Version string
	// OASVersion is the enumerated version series
	OASVersion OASVersion
	// Document is the parsed document: *OAS2Document or *OAS3Document
	Document DocumentAccessor
	// LoadTime is the time taken to decode the document
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// OAS2Document returns the parsed document as an OAS2Document if the
// specification is version 2.0.
func (pr *ParseResult) OAS2Document() (*OAS2Document, bool) {
	doc, ok := pr.Document.(*OAS2Document)
	return doc, ok
}

// OAS3Document returns the parsed document as an OAS3Document if the
// specification is version 3.x.
func (pr *ParseResult) OAS3Document() (*OAS3Document, bool) {
	doc, ok := pr.Document.(*OAS3Document)
	return doc, ok
}

// Parse reads and parses the document stored at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	res, err := p.parse(data, path)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	if format := formatFromPath(path); format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseBytes parses a JSON or YAML document held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parse(data, "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses data with a default Parser.
func ParseBytes(data []byte) (*ParseResult, error) {
	return New().ParseBytes(data)
}

func (p *Parser) parse(data []byte, source string) (*ParseResult, error) {
	log := LoggerOrNop(p.Logger)
	start := time.Now()

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to decode document", Cause: err}
	}
	version, err := detectVersion(raw)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: err.Error()}
	}
	doc, oasVersion, err := decodeVersionSpecific(data, version)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to decode document structure", Cause: err}
	}

	res := &ParseResult{
		SourceFormat: formatFromContent(data),
		Version:      version,
		OASVersion:   oasVersion,
		Document:     doc,
		LoadTime:     time.Since(start),
		SourceSize:   int64(len(data)),
	}
	log.Debug("parsed document",
		"version", version,
		"format", res.SourceFormat,
		"paths", doc.GetPaths().Len(),
		"elapsed", res.LoadTime)
	return res, nil
}

// detectVersion returns the value of the swagger or openapi field.
func detectVersion(raw map[string]any) (string, error) {
	if v, ok := raw["swagger"]; ok {
		return versionString(v), nil
	}
	if v, ok := raw["openapi"]; ok {
		return versionString(v), nil
	}
	return "", fmt.Errorf("unable to detect OpenAPI version: document must contain a 'swagger' or 'openapi' field")
}

// versionString tolerates unquoted YAML versions such as `swagger: 2.0`.
func versionString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.1f", t)
	}
	return fmt.Sprint(v)
}

func decodeVersionSpecific(data []byte, version string) (DocumentAccessor, OASVersion, error) {
	v, ok := ParseVersion(version)
	if !ok {
		return nil, Unknown, fmt.Errorf("unsupported OpenAPI version: %s (only 2.0 and 3.x versions are supported)", version)
	}
	if v == OASVersion20 {
		var doc OAS2Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, Unknown, err
		}
		// an unquoted `swagger: 2.0` decodes as a number
		doc.Swagger = version
		doc.OASVersion = v
		return &doc, v, nil
	}
	var doc OAS3Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Unknown, err
	}
	doc.OpenAPI = version
	doc.OASVersion = v
	return &doc, v, nil
}

func formatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}

// formatFromContent treats input starting with '{' as JSON.
func formatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
