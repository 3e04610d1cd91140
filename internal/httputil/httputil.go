// Package httputil provides HTTP-related validation utilities, constants and
// URI encoding shared by the reader and the resolver.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// Default ports omitted from rendered hosts.
const (
	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
)

// MethodOrder is the fixed order in which operations of a path item are
// visited and searched.
var MethodOrder = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodPatch,
	MethodHead,
	MethodOptions,
}

// Wildcard boundary characters for validation
const (
	minWildcardBoundary = '1'
	maxWildcardBoundary = '5'
)

// ValidateStatusCode checks if a response code is usable as a key of an
// operation's responses.
// Valid values are:
//   - "default" for default response
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}

	if len(code) != StatusCodeLength {
		return false
	}

	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= minWildcardBoundary && code[0] <= maxWildcardBoundary
	}

	for i := 0; i < StatusCodeLength; i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	if strings.HasSuffix(mediaType, "/*") {
		parts := strings.Split(mediaType, "/")
		return len(parts) == 2 && parts[0] != "" && parts[0] != "*"
	}

	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	typ, subtype, ok := strings.Cut(mt, "/")
	return ok && typ != "*" && subtype != ""
}

// IsMediaRangeList reports whether value is a comma-separated list of media
// ranges (RFC 7231 section 5.3.2), e.g. "application/json, text/*;q=0.5".
func IsMediaRangeList(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, part := range strings.Split(value, ",") {
		if !IsValidMediaType(strings.TrimSpace(part)) {
			return false
		}
	}
	return true
}

// SplitList splits a comma-separated list, trimming entries and dropping
// empty ones.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsDefaultPort reports whether port is the well-known port of scheme.
func IsDefaultPort(scheme string, port int) bool {
	switch strings.ToLower(scheme) {
	case "http":
		return port == DefaultHTTPPort
	case "https":
		return port == DefaultHTTPSPort
	}
	return false
}

const upperHex = "0123456789ABCDEF"

// EncodeUnsafe percent-encodes the characters that may not appear literally
// in a URI path or query value. Existing %XX escapes are kept, so encoding
// an already encoded value is a no-op.
func EncodeUnsafe(s string) string {
	if !needsEncoding(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(c)
			continue
		}
		if isUnsafe(c) {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0F])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func needsEncoding(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			continue
		}
		if isUnsafe(c) {
			return true
		}
	}
	return false
}

func isUnsafe(c byte) bool {
	if c <= 0x20 || c >= 0x7F {
		return true
	}
	switch c {
	case '"', '<', '>', '#', '%', '{', '}', '|', '\\', '^', '[', ']', '`', '?':
		return true
	}
	return false
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
