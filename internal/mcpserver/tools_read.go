package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/restoas/internal/conformance"
	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/reader"
)

type readRoutesInput struct {
	File        string   `json:"file,omitempty"         jsonschema:"Path to a routes YAML file on disk"`
	Content     string   `json:"content,omitempty"      jsonschema:"Inline routes YAML content"`
	RouteFilter string   `json:"route_filter,omitempty" jsonschema:"Only document the rest whose path equals this value"`
	Format      string   `json:"format,omitempty"       jsonschema:"Output format of the document: json (default) or yaml"`
	Check       bool     `json:"check,omitempty"        jsonschema:"Validate the generated document against the Swagger 2.0 schema"`
	Title       string   `json:"title,omitempty"        jsonschema:"Document title"`
	Version     string   `json:"version,omitempty"      jsonschema:"Document version"`
	Host        string   `json:"host,omitempty"         jsonschema:"Host the API is served on"`
	BasePath    string   `json:"base_path,omitempty"    jsonschema:"Base path of the API"`
	Schemes     []string `json:"schemes,omitempty"      jsonschema:"Transfer protocols of the API"`
}

type readRoutesOutput struct {
	PathCount       int    `json:"path_count"`
	OperationCount  int    `json:"operation_count"`
	DefinitionCount int    `json:"definition_count"`
	Valid           *bool  `json:"valid,omitempty"`
	Problem         string `json:"problem,omitempty"`
	Document        string `json:"document"`
}

// routes decodes the route file named by the input.
func (in readRoutesInput) routes() (*reader.RouteFile, error) {
	switch {
	case in.File != "" && in.Content != "":
		return nil, errors.New("exactly one of file or content must be provided (got 2)")
	case in.File != "":
		return reader.LoadRoutesFile(in.File)
	case in.Content != "":
		if int64(len(in.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RESTOAS_MCP_MAX_INLINE_SIZE to increase",
				len(in.Content), cfg.MaxInlineSize)
		}
		return reader.LoadRoutes([]byte(in.Content))
	}
	return nil, errors.New("exactly one of file or content must be provided (got 0)")
}

// documentConfig overlays the input's document fields on the defaults.
func (t *toolset) documentConfig(in readRoutesInput) reader.Config {
	c := t.document
	if in.Title != "" {
		c.Title = in.Title
	}
	if in.Version != "" {
		c.Version = in.Version
	}
	if in.Host != "" {
		c.Host = in.Host
	}
	if in.BasePath != "" {
		c.BasePath = in.BasePath
	}
	if len(in.Schemes) > 0 {
		c.Schemes = in.Schemes
	}
	return c
}

func (t *toolset) handleReadRoutes(ctx context.Context, _ *mcp.CallToolRequest, input readRoutesInput) (*mcp.CallToolResult, readRoutesOutput, error) {
	format := parser.SourceFormatJSON
	switch strings.ToLower(input.Format) {
	case "", "json":
	case "yaml", "yml":
		format = parser.SourceFormatYAML
	default:
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), readRoutesOutput{}, nil
	}

	rf, err := input.routes()
	if err != nil {
		return errResult(err), readRoutesOutput{}, nil
	}
	doc, err := reader.Read(rf.Rests, input.RouteFilter, t.documentConfig(input),
		reader.WithClassResolver(rf.ClassResolver()),
		reader.WithLogger(parser.NewSlogAdapter(t.logger)),
	)
	if err != nil {
		return errResult(err), readRoutesOutput{}, nil
	}

	output := readRoutesOutput{
		PathCount:       doc.Paths.Len(),
		DefinitionCount: doc.Definitions.Len(),
	}
	for _, item := range doc.Paths.All() {
		for range item.Operations() {
			output.OperationCount++
		}
	}

	if input.Check {
		valid := true
		if err := conformance.CheckDocument(ctx, doc); err != nil {
			valid = false
			output.Problem = sanitizeError(err)
		}
		output.Valid = &valid
	}

	data, err := parser.Marshal(doc, format)
	if err != nil {
		return errResult(err), readRoutesOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}
