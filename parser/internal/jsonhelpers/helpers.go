// Package jsonhelpers provides helper functions for JSON marshaling with
// support for extension fields (x-* properties) in OpenAPI documents.
//
// encoding/json has no equivalent of yaml:",inline" for maps, so types that
// keep extensions in an Extra map flatten them through MarshalWithExtras.
package jsonhelpers

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalWithExtras marshals v (normally an alias of the calling type, to
// avoid recursion) and merges extras into the resulting object. Only keys
// starting with "x-" are merged; known fields always win over extras.
//
// Example:
//
//	func (t *Tag) MarshalJSON() ([]byte, error) {
//	    type Alias Tag
//	    return jsonhelpers.MarshalWithExtras((*Alias)(t), t.Extra)
//	}
func MarshalWithExtras(v any, extras map[string]any) ([]byte, error) {
	base, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	if !HasExtensions(extras) {
		return base, nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, val := range extras {
		if !IsExtension(k) {
			continue
		}
		if _, known := m[k]; known {
			continue
		}
		raw, err := Marshal(val)
		if err != nil {
			return nil, err
		}
		m[k] = raw
	}
	return Marshal(m)
}

// Marshal is json.Marshal without HTML escaping, so examples such as
// "<hello>Hi</hello>" are written as-is.
func Marshal(v any) ([]byte, error) {
	return MarshalIndent(v, "")
}

// MarshalIndent encodes v without HTML escaping, indenting nested elements
// with indent when it is non-empty. The trailing newline the encoder adds is
// removed.
func MarshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// IsExtension reports whether key names a specification extension.
func IsExtension(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// HasExtensions reports whether extras holds at least one extension key.
func HasExtensions(extras map[string]any) bool {
	for k := range extras {
		if IsExtension(k) {
			return true
		}
	}
	return false
}
