// Package typemap maps REST type names to JSON Schema fragments and keeps the
// registry of named definitions those fragments refer to.
//
// A type name is either a primitive alias (string, int, integer, long,
// float, double, boolean, byte) or a class-qualified identifier such as
// "com.acme.Pet". Either form may carry an array suffix "[]".
//
// Class-qualified types are recovered from the registry through the
// x-className extension: every definition registered by [Mapper.Register]
// carries {type: "string", format: <qualified name>} under that key, and
// [Mapper.SchemaFor] emits a $ref to the definition whose format matches.
package typemap

import (
	"strings"

	"github.com/erraggy/restoas/parser"
)

// ExtClassName is the extension attaching a qualified type name to a
// definition.
const ExtClassName = "x-className"

// ArraySuffix marks an array type name.
const ArraySuffix = "[]"

// StripArray removes a trailing "[]" and reports whether it was present.
func StripArray(typeName string) (string, bool) {
	if strings.HasSuffix(typeName, ArraySuffix) {
		return strings.TrimSuffix(typeName, ArraySuffix), true
	}
	return typeName, false
}

// Primitive returns the schema of a primitive alias. The lookup ignores
// case; name must not carry an array suffix. "byte" is only a primitive as
// the element of an array, see [Mapper.SchemaFor].
func Primitive(name string) (*parser.Schema, bool) {
	typ, format, ok := primitiveTypeFormat(name)
	if !ok {
		return nil, false
	}
	return &parser.Schema{Type: typ, Format: format}, true
}

// IsPrimitive reports whether typeName, after removing an array suffix,
// names a primitive alias. Primitive types need no class resolution.
func IsPrimitive(typeName string) bool {
	name, _ := StripArray(typeName)
	if _, _, ok := primitiveTypeFormat(name); ok {
		return true
	}
	return strings.EqualFold(name, "byte")
}

// TypeFormat returns the OAS 2.0 type and format for a primitive alias
// ("long" gives integer/int64). ok is false for anything else.
func TypeFormat(name string) (typ, format string, ok bool) {
	return primitiveTypeFormat(name)
}

func primitiveTypeFormat(name string) (string, string, bool) {
	switch strings.ToLower(name) {
	case "string":
		return "string", "", true
	case "int", "integer":
		return "integer", "int32", true
	case "long":
		return "integer", "int64", true
	case "float":
		return "number", "float", true
	case "double":
		return "number", "double", true
	case "boolean":
		return "boolean", "", true
	}
	return "", "", false
}

// ClassNameValue is the x-className extension value for a qualified name.
func ClassNameValue(className string) map[string]any {
	return map[string]any{"type": "string", "format": className}
}

// ClassNameOf returns the qualified name recorded in a schema's x-className
// extension.
func ClassNameOf(s *parser.Schema) (string, bool) {
	v, ok := s.Extension(ExtClassName)
	if !ok {
		return "", false
	}
	switch m := v.(type) {
	case map[string]any:
		f, ok := m["format"].(string)
		return f, ok && f != ""
	case map[string]string:
		f, ok := m["format"]
		return f, ok && f != ""
	}
	return "", false
}

// ShortName returns the last dot-separated segment of a qualified name.
func ShortName(className string) string {
	if i := strings.LastIndex(className, "."); i >= 0 {
		return className[i+1:]
	}
	return className
}

// Mapper maps type names against the definitions of one document.
type Mapper struct {
	doc parser.DocumentAccessor
}

// New returns a Mapper over doc's definition registry.
func New(doc parser.DocumentAccessor) *Mapper {
	return &Mapper{doc: doc}
}

// SchemaFor returns the schema fragment for typeName.
//
// Primitive aliases map to their JSON Schema type; "byte[]" maps to a
// base64 string. A qualified name maps to a $ref when a definition carries
// a matching x-className, and to {type: "string"} otherwise. Any remaining
// array suffix wraps the result in an array schema.
func (m *Mapper) SchemaFor(typeName string) *parser.Schema {
	name, array := StripArray(typeName)

	var schema *parser.Schema
	switch {
	case array && strings.EqualFold(name, "byte"):
		schema = &parser.Schema{Type: "string", Format: "byte"}
		array = false
	default:
		if p, ok := Primitive(name); ok {
			schema = p
		} else if def, ok := m.DefinitionFor(name); ok {
			schema = &parser.Schema{Ref: m.doc.SchemaRefPrefix() + def}
		} else {
			schema = &parser.Schema{Type: "string"}
		}
	}

	if array {
		return &parser.Schema{Type: "array", Items: schema}
	}
	return schema
}

// DefinitionFor returns the name of the definition whose x-className format
// equals className. An array suffix on className is ignored.
func (m *Mapper) DefinitionFor(className string) (string, bool) {
	className, _ = StripArray(className)
	for name, s := range m.doc.GetSchemas().All() {
		if s == nil {
			continue
		}
		if cn, ok := ClassNameOf(s); ok && cn == className {
			return name, true
		}
	}
	return "", false
}

// Register adds schema to the registry under the short name of className
// and tags it with x-className. Unqualified names are rejected and an
// existing definition that already carries x-className is kept; in both
// cases added is false. A nil schema registers {type: "object"}.
func (m *Mapper) Register(className string, schema *parser.Schema) (key string, added bool) {
	className, _ = StripArray(className)
	if !strings.Contains(className, ".") {
		return "", false
	}
	key = ShortName(className)
	if key == "" {
		return "", false
	}
	if existing, ok := m.doc.GetSchemas().Get(key); ok && existing != nil {
		if _, tagged := existing.Extension(ExtClassName); tagged {
			return key, false
		}
	}
	if schema == nil {
		schema = &parser.Schema{Type: "object"}
	}
	schema.SetExtension(ExtClassName, ClassNameValue(className))
	m.doc.AddDefinition(key, schema)
	return key, true
}
