package reader

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/typemap"
)

// TypeRegistry resolves classes from Go struct types. A type is known by its
// qualified name, the import path and type name joined by a dot, for
// example "github.com/acme/api/models.Pet".
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypeRegistry returns a registry holding the types of values.
func NewTypeRegistry(values ...any) *TypeRegistry {
	r := &TypeRegistry{types: make(map[string]reflect.Type)}
	r.Register(values...)
	return r
}

// Register adds the types of values and returns their class names. Pointer
// values register the element type; unnamed types are skipped.
func (r *TypeRegistry) Register(values ...any) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for _, v := range values {
		if v == nil {
			continue
		}
		t := derefType(reflect.TypeOf(v))
		name := ClassName(t)
		if name == "" {
			continue
		}
		r.types[name] = t
		names = append(names, name)
	}
	return names
}

// ClassName returns the qualified name of a named type, or "" for unnamed
// and predeclared types.
func ClassName(t reflect.Type) string {
	t = derefType(t)
	if t.Name() == "" || t.PkgPath() == "" {
		return ""
	}
	return t.PkgPath() + "." + t.Name()
}

// ResolveClass implements ClassResolver. Struct types yield their own model
// followed by the models of nested named structs; other types yield none.
func (r *TypeRegistry) ResolveClass(className string) ([]Model, error) {
	r.mu.RLock()
	t, ok := r.types[className]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, className)
	}
	if t.Kind() != reflect.Struct || isSpecialType(t) {
		return nil, nil
	}
	g := &schemaGen{inProgress: make(map[reflect.Type]bool), done: make(map[reflect.Type]bool)}
	g.model(t)
	return g.models, nil
}

// schemaGen turns Go types into OAS 2.0 schemas, collecting a model for
// every named struct it meets.
type schemaGen struct {
	models     []Model
	inProgress map[reflect.Type]bool
	done       map[reflect.Type]bool
}

func (g *schemaGen) model(t reflect.Type) {
	g.done[t] = true
	g.inProgress[t] = true
	idx := len(g.models)
	g.models = append(g.models, Model{ClassName: ClassName(t)})
	schema := g.structSchema(t)
	delete(g.inProgress, t)
	g.models[idx].Schema = schema
}

func (g *schemaGen) schemaFor(t reflect.Type) *parser.Schema {
	t = derefType(t)
	if special := specialTypeSchema(t); special != nil {
		return special
	}

	switch t.Kind() {
	case reflect.Struct:
		name := ClassName(t)
		if name == "" {
			return g.structSchema(t)
		}
		if !g.done[t] && !g.inProgress[t] {
			g.model(t)
		}
		return &parser.Schema{Ref: parser.RefPrefixDefinitions + typemap.ShortName(name)}

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &parser.Schema{Type: "string", Format: "byte"}
		}
		return &parser.Schema{Type: "array", Items: g.schemaFor(t.Elem())}

	case reflect.Map:
		return &parser.Schema{Type: "object", AdditionalProperties: g.schemaFor(t.Elem())}
	}
	return primitiveSchema(t)
}

func (g *schemaGen) structSchema(t reflect.Type) *parser.Schema {
	schema := &parser.Schema{Type: "object"}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(jsonTag, ",")
		if name == "" {
			name = field.Name
		}

		fieldSchema := g.schemaFor(field.Type)
		if desc := field.Tag.Get("description"); desc != "" && fieldSchema.Ref == "" {
			fieldSchema.Description = desc
		}
		if schema.Properties == nil {
			schema.Properties = make(map[string]*parser.Schema)
		}
		schema.Properties[name] = fieldSchema

		if !strings.Contains(opts, "omitempty") && field.Type.Kind() != reflect.Pointer {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func isSpecialType(t reflect.Type) bool {
	return specialTypeSchema(t) != nil
}

func specialTypeSchema(t reflect.Type) *parser.Schema {
	if t == reflect.TypeOf(time.Time{}) {
		return &parser.Schema{Type: "string", Format: "date-time"}
	}
	if t.String() == "uuid.UUID" {
		return &parser.Schema{Type: "string", Format: "uuid"}
	}
	return nil
}

func primitiveSchema(t reflect.Type) *parser.Schema {
	switch t.Kind() {
	case reflect.String:
		return &parser.Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &parser.Schema{Type: "integer", Format: "int32"}
	case reflect.Int64, reflect.Uint64:
		return &parser.Schema{Type: "integer", Format: "int64"}
	case reflect.Float32:
		return &parser.Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return &parser.Schema{Type: "number", Format: "double"}
	case reflect.Bool:
		return &parser.Schema{Type: "boolean"}
	}
	return &parser.Schema{}
}
