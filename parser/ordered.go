package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restoas/parser/internal/jsonhelpers"
)

// OrderedMap is a string-keyed map that remembers insertion order. It backs
// the parts of a document whose order is observable: paths, definitions and
// responses. Order survives JSON output and YAML/JSON decoding.
//
// The zero value is ready to use.
type OrderedMap[V any] struct {
	m *sequencedmap.Map[string, V]
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{m: sequencedmap.New[string, V]()}
}

func (o *OrderedMap[V]) init() {
	if o.m == nil {
		o.m = sequencedmap.New[string, V]()
	}
}

// Len returns the number of entries. nil safe.
func (o *OrderedMap[V]) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return o.m.Len()
}

// Get returns the value stored under key.
func (o *OrderedMap[V]) Get(key string) (V, bool) {
	if o == nil || o.m == nil {
		var zero V
		return zero, false
	}
	return o.m.Get(key)
}

// Has reports whether key is present.
func (o *OrderedMap[V]) Has(key string) bool {
	if o == nil || o.m == nil {
		return false
	}
	return o.m.Has(key)
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (o *OrderedMap[V]) Set(key string, value V) {
	o.init()
	if !o.m.Has(key) {
		o.m.Set(key, value)
		return
	}
	// replace in place: rebuild so the key keeps its position
	rebuilt := sequencedmap.New[string, V]()
	for k, v := range o.m.All() {
		if k == key {
			v = value
		}
		rebuilt.Set(k, v)
	}
	o.m = rebuilt
}

// Delete removes key.
func (o *OrderedMap[V]) Delete(key string) {
	if o == nil || o.m == nil {
		return
	}
	o.m.Delete(key)
}

// All iterates over the entries in insertion order.
func (o *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if o == nil || o.m == nil {
			return
		}
		for k, v := range o.m.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (o *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}
	return keys
}

// MarshalJSON writes the entries as a JSON object in insertion order. HTML
// characters in values are not escaped.
func (o *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range o.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := jsonhelpers.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := jsonhelpers.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a mapping node, keeping the source key order. JSON
// input goes through the same path since YAML is a superset of JSON.
func (o *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}
	o.m = sequencedmap.New[string, V]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("key %q: %w", node.Content[i].Value, err)
		}
		key := node.Content[i].Value
		if o.m.Has(key) {
			return fmt.Errorf("line %d: duplicate key %q", node.Content[i].Line, key)
		}
		o.m.Set(key, value)
	}
	return nil
}

// UnmarshalJSON decodes a JSON object, keeping the source key order.
func (o *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON object")
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	return o.UnmarshalYAML(&node)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown node"
}
