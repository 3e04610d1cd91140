// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes restoas capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/restoas"
	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/reader"
	"github.com/erraggy/restoas/resolver"
)

const serverInstructions = `restoas MCP server. Generates Swagger 2.0 documents from REST route definitions, resolves OpenAPI operations into HTTP endpoint descriptors and lists the route calls an OpenAPI document describes.

Tools:
- read_routes: route definitions (YAML) to a Swagger 2.0 document, optionally checked against the Swagger 2.0 schema.
- resolve_endpoint: an endpoint URI (component:[specificationUri#]operationId), or a spec plus operation_id, to method, URL, query template and media types.
- emit_operations: the operations of a spec as route definition calls. Paginate with offset/limit.

Configuration: defaults are configurable via RESTOAS_MCP_* environment variables set in your MCP client config.

Key settings:
- RESTOAS_MCP_CACHE_ENABLED (default: true): disable spec caching entirely
- RESTOAS_MCP_CACHE_FILE_TTL (default: 15m): cache TTL for local file specs
- RESTOAS_MCP_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched specs
- RESTOAS_MCP_MAX_INLINE_SIZE (default: 10MiB): size limit of inline content
- RESTOAS_MCP_ALLOW_PRIVATE_IPS (default: false): allow spec URLs on private networks
- RESTOAS_MCP_EMIT_LIMIT (default: 50): default page size of emit_operations

Caching: parsed specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL.`

// Options configure the tools served by Run.
type Options struct {
	// Resolver resolves endpoint URIs. When nil a Resolver without
	// component overrides is used.
	Resolver *resolver.Resolver
	// Document holds the document settings read_routes starts from.
	Document reader.Config
	// Logger receives tool diagnostics. Never write logs to stdout while
	// serving over stdio.
	Logger *slog.Logger
}

// toolset holds what the tool handlers share.
type toolset struct {
	resolver *resolver.Resolver
	document reader.Config
	logger   *slog.Logger
}

func newToolset(opts Options) (*toolset, error) {
	t := &toolset{resolver: opts.Resolver, document: opts.Document, logger: opts.Logger}
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	if t.resolver == nil {
		r, err := resolver.New(resolver.WithLogger(parser.NewSlogAdapter(t.logger)))
		if err != nil {
			return nil, err
		}
		t.resolver = r
	}
	return t, nil
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	server, err := newServer(opts)
	if err != nil {
		return err
	}
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer(opts Options) (*mcp.Server, error) {
	tools, err := newToolset(opts)
	if err != nil {
		return nil, err
	}
	server := mcp.NewServer(
		&mcp.Implementation{Name: "restoas", Version: restoas.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, tools)
	return server, nil
}

func registerAllTools(server *mcp.Server, t *toolset) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_routes",
		Description: "Generate a Swagger 2.0 document from REST route definitions given as a routes YAML file or inline content. Use route_filter to document a single rest path. Document fields (title, version, host, base_path, schemes) override the server defaults. Set check=true to validate the result against the Swagger 2.0 schema.",
	}, t.handleReadRoutes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_endpoint",
		Description: "Resolve an OpenAPI operation into the HTTP endpoint that invokes it: method, host, base path, path, full URL, query template, and the Content-Type and Accept values. Address the operation with uri (component:[specificationUri#]operationId, loaded through the server's class path) or with spec plus operation_id. parameters supplies literal values for path and query parameters.",
	}, t.handleResolveEndpoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "emit_operations",
		Description: "List the operations of an OpenAPI document as REST route definition calls (verb, id, description, consumes, produces, params, to). Use filter with comma-separated operationId globs to narrow the result, and offset/limit to paginate. format=text renders the calls as a fluent route definition; the default returns structured calls. Default limit is configurable via RESTOAS_MCP_EMIT_LIMIT.",
	}, t.handleEmitOperations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.EmitLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.EmitLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// validateGlobPatterns checks every comma-separated glob in patterns once,
// so a bad pattern is reported instead of silently matching nothing.
func validateGlobPatterns(patterns string) error {
	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
			continue
		}
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	}
	return nil
}
