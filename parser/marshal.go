package parser

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restoas/parser/internal/jsonhelpers"
)

// MarshalJSON renders v (normally a document) as indented JSON. Extensions
// are flattened, path and definition order is kept and HTML characters are
// written as-is.
func MarshalJSON(v any) ([]byte, error) {
	return jsonhelpers.MarshalIndent(v, "  ")
}

// MarshalYAML renders v as block-style YAML with the same key order as
// MarshalJSON.
func MarshalYAML(v any) ([]byte, error) {
	data, err := jsonhelpers.Marshal(v)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parser: re-reading JSON output: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal renders v in the given format. An unknown format yields JSON.
func Marshal(v any, format SourceFormat) ([]byte, error) {
	if format == SourceFormatYAML {
		return MarshalYAML(v)
	}
	return MarshalJSON(v)
}

// clearStyle drops the flow and quoting styles JSON input leaves on nodes.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
