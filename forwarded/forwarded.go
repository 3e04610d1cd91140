// Package forwarded rewrites the basePath, host and schemes of an OAS 2.0
// document from the X-Forwarded-* headers of the request that asked for it,
// so a document served behind a proxy points clients at the proxy.
package forwarded

import (
	"net/http"
	"strings"

	"github.com/erraggy/restoas/parser"
)

// Recognized headers.
const (
	HeaderPrefix = "X-Forwarded-Prefix"
	HeaderHost   = "X-Forwarded-Host"
	HeaderProto  = "X-Forwarded-Proto"
)

// Apply rewrites doc in place from h and reports whether anything changed.
//
//   - X-Forwarded-Prefix is prepended to basePath with a single '/'
//     between them.
//   - X-Forwarded-Host replaces host.
//   - X-Forwarded-Proto is split on commas; the trimmed, lower-cased,
//     non-empty entries replace schemes.
//
// Header names match case-insensitively, so maps built by hand with
// non-canonical keys work too. Absent or empty headers leave the
// corresponding field untouched. OAS 3.x documents are never modified.
func Apply(doc parser.DocumentAccessor, h http.Header) bool {
	d, ok := doc.(*parser.OAS2Document)
	if !ok || d == nil || len(h) == 0 {
		return false
	}
	changed := false
	if prefix := get(h, HeaderPrefix); prefix != "" {
		d.BasePath = JoinPrefix(prefix, d.BasePath)
		changed = true
	}
	if host := get(h, HeaderHost); host != "" {
		d.Host = host
		changed = true
	}
	if schemes := Schemes(get(h, HeaderProto)); len(schemes) > 0 {
		d.Schemes = schemes
		changed = true
	}
	return changed
}

// get returns the first value of key in h. Canonical keys are tried first,
// then any key equal under case folding.
func get(h http.Header, key string) string {
	if v := h.Get(key); v != "" {
		return v
	}
	for k, vs := range h {
		if len(vs) > 0 && vs[0] != "" && strings.EqualFold(k, key) {
			return vs[0]
		}
	}
	return ""
}

// JoinPrefix prepends prefix to basePath. Exactly one '/' separates them;
// an empty basePath yields prefix as is, and a trailing '/' on basePath is
// kept.
func JoinPrefix(prefix, basePath string) string {
	if basePath == "" {
		return prefix
	}
	prefixSlash := strings.HasSuffix(prefix, "/")
	baseSlash := strings.HasPrefix(basePath, "/")
	switch {
	case prefixSlash && baseSlash:
		return prefix + basePath[1:]
	case prefixSlash || baseSlash:
		return prefix + basePath
	}
	return prefix + "/" + basePath
}

// Schemes parses an X-Forwarded-Proto value.
func Schemes(proto string) []string {
	var out []string
	for _, s := range strings.Split(proto, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
