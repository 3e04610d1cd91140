package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/restoas/parser"
)

// specInput is one of the three ways a specification reaches a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"http or https URL to fetch an OpenAPI document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// makeCacheKey returns the cache key of s, or "" when s cannot be cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

// uri names the input for host derivation and error messages. Inline
// content has no URI.
func (s specInput) uri() string {
	switch {
	case s.File != "":
		return s.File
	case s.URL != "":
		return s.URL
	}
	return ""
}

func (s specInput) validate() error {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RESTOAS_MCP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	if s.URL != "" {
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("invalid url: %w", err)
		}
		if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
			return fmt.Errorf("url must use http or https, got %q", u.Scheme)
		}
	}
	return nil
}

// resolve parses the specification from whichever input was provided,
// consulting the cache first.
func (s specInput) resolve(ctx context.Context) (*parser.ParseResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	if !cfg.CacheEnabled {
		return s.parse(ctx)
	}
	key := makeCacheKey(s)
	if key == "" {
		return s.parse(ctx)
	}
	ttl := cfg.CacheContentTTL
	switch {
	case s.File != "":
		ttl = cfg.CacheFileTTL
	case s.URL != "":
		ttl = cfg.CacheURLTTL
	}
	return specCache.load(key, ttl, func() (*parser.ParseResult, error) {
		return s.parse(ctx)
	})
}

func (s specInput) parse(ctx context.Context) (*parser.ParseResult, error) {
	switch {
	case s.File != "":
		return parser.New().Parse(s.File)
	case s.URL != "":
		data, err := newSpecLoader().Load(ctx, s.URL)
		if err != nil {
			return nil, err
		}
		result, err := parser.ParseBytes(data)
		if err != nil {
			return nil, err
		}
		result.SourcePath = s.URL
		return result, nil
	default:
		return parser.ParseBytes([]byte(s.Content))
	}
}
