package parser

import (
	"maps"
	"slices"
)

// Schema reference prefixes
const (
	RefPrefixDefinitions = "#/definitions/"
	RefPrefixSchemas     = "#/components/schemas/"
)

// DocumentAccessor provides version-agnostic access to OAS 2.0 and OAS 3.x
// documents. Callers dispatch through it instead of switching on the
// concrete document type.
//
// # Fields with semantic equivalence (different locations, same meaning)
//
//   - Schemas: OAS 2.0 doc.Definitions vs OAS 3.x doc.Components.Schemas
//   - SecuritySchemes: OAS 2.0 doc.SecurityDefinitions vs OAS 3.x doc.Components.SecuritySchemes
//   - Operation media types: OAS 2.0 consumes/produces arrays vs OAS 3.x
//     requestBody and response content maps
//
// # Fields without an OAS 3.x counterpart
//
// GetHost, GetBasePath, GetSchemes, GetConsumes and GetProduces return zero
// values for OAS 3.x documents; servers are not consulted.
//
// Returned maps and slices are the document's own; mutate them only when the
// intent is to change the document.
type DocumentAccessor interface {
	// GetVersion returns the OASVersion enum for this document.
	GetVersion() OASVersion

	// GetVersionString returns the version string (e.g., "2.0", "3.0.3").
	GetVersionString() string

	GetInfo() *Info
	GetPaths() *Paths
	GetTags() []*Tag
	GetSecurity() []SecurityRequirement

	// GetSchemas returns the named schemas (definitions or components.schemas).
	// Returns nil if the container is not set.
	GetSchemas() *OrderedMap[*Schema]

	// GetSecuritySchemes returns the security scheme definitions.
	GetSecuritySchemes() map[string]*SecurityScheme

	// SchemaRefPrefix returns the JSON reference prefix for schemas.
	SchemaRefPrefix() string

	GetHost() string
	GetBasePath() string
	GetSchemes() []string
	GetConsumes() []string
	GetProduces() []string

	// OperationConsumes returns the request media types declared by op.
	OperationConsumes(op *Operation) []string

	// OperationProduces returns the response media types declared by op.
	OperationProduces(op *Operation) []string

	// AddDefinition stores a named schema, creating the container if needed.
	AddDefinition(name string, schema *Schema)

	// ClearExtensions removes specification extensions from the document,
	// its named schemas, its path items and their operations.
	ClearExtensions()
}

// Compile-time interface verification
var (
	_ DocumentAccessor = (*OAS2Document)(nil)
	_ DocumentAccessor = (*OAS3Document)(nil)
)

// ----- OAS2Document implementation -----

// GetVersion implements DocumentAccessor.
func (d *OAS2Document) GetVersion() OASVersion { return OASVersion20 }

// GetVersionString implements DocumentAccessor.
func (d *OAS2Document) GetVersionString() string { return d.Swagger }

// GetInfo implements DocumentAccessor.
func (d *OAS2Document) GetInfo() *Info { return d.Info }

// GetPaths implements DocumentAccessor.
func (d *OAS2Document) GetPaths() *Paths { return d.Paths }

// GetTags implements DocumentAccessor.
func (d *OAS2Document) GetTags() []*Tag { return d.Tags }

// GetSecurity implements DocumentAccessor.
func (d *OAS2Document) GetSecurity() []SecurityRequirement { return d.Security }

// GetSchemas implements DocumentAccessor.
func (d *OAS2Document) GetSchemas() *OrderedMap[*Schema] { return d.Definitions }

// GetSecuritySchemes implements DocumentAccessor.
func (d *OAS2Document) GetSecuritySchemes() map[string]*SecurityScheme {
	return d.SecurityDefinitions
}

// SchemaRefPrefix implements DocumentAccessor.
func (d *OAS2Document) SchemaRefPrefix() string { return RefPrefixDefinitions }

// GetHost implements DocumentAccessor.
func (d *OAS2Document) GetHost() string { return d.Host }

// GetBasePath implements DocumentAccessor.
func (d *OAS2Document) GetBasePath() string { return d.BasePath }

// GetSchemes implements DocumentAccessor.
func (d *OAS2Document) GetSchemes() []string { return d.Schemes }

// GetConsumes implements DocumentAccessor.
func (d *OAS2Document) GetConsumes() []string { return d.Consumes }

// GetProduces implements DocumentAccessor.
func (d *OAS2Document) GetProduces() []string { return d.Produces }

// OperationConsumes implements DocumentAccessor.
func (d *OAS2Document) OperationConsumes(op *Operation) []string {
	if op == nil {
		return nil
	}
	return op.Consumes
}

// OperationProduces implements DocumentAccessor.
func (d *OAS2Document) OperationProduces(op *Operation) []string {
	if op == nil {
		return nil
	}
	return op.Produces
}

// AddDefinition implements DocumentAccessor.
func (d *OAS2Document) AddDefinition(name string, schema *Schema) {
	if d.Definitions == nil {
		d.Definitions = NewOrderedMap[*Schema]()
	}
	d.Definitions.Set(name, schema)
}

// ClearExtensions implements DocumentAccessor.
func (d *OAS2Document) ClearExtensions() {
	d.Extra = nil
	clearSchemaExtensions(d.Definitions)
	clearPathExtensions(d.Paths)
}

// ----- OAS3Document implementation -----

// GetVersion implements DocumentAccessor.
func (d *OAS3Document) GetVersion() OASVersion {
	if d.OASVersion.IsOAS3() {
		return d.OASVersion
	}
	if v, ok := ParseVersion(d.OpenAPI); ok {
		return v
	}
	return OASVersion30
}

// GetVersionString implements DocumentAccessor.
func (d *OAS3Document) GetVersionString() string { return d.OpenAPI }

// GetInfo implements DocumentAccessor.
func (d *OAS3Document) GetInfo() *Info { return d.Info }

// GetPaths implements DocumentAccessor.
func (d *OAS3Document) GetPaths() *Paths { return d.Paths }

// GetTags implements DocumentAccessor.
func (d *OAS3Document) GetTags() []*Tag { return d.Tags }

// GetSecurity implements DocumentAccessor.
func (d *OAS3Document) GetSecurity() []SecurityRequirement { return d.Security }

// GetSchemas implements DocumentAccessor.
func (d *OAS3Document) GetSchemas() *OrderedMap[*Schema] {
	if d.Components == nil {
		return nil
	}
	return d.Components.Schemas
}

// GetSecuritySchemes implements DocumentAccessor.
func (d *OAS3Document) GetSecuritySchemes() map[string]*SecurityScheme {
	if d.Components == nil {
		return nil
	}
	return d.Components.SecuritySchemes
}

// SchemaRefPrefix implements DocumentAccessor.
func (d *OAS3Document) SchemaRefPrefix() string { return RefPrefixSchemas }

// GetHost implements DocumentAccessor.
func (d *OAS3Document) GetHost() string { return "" }

// GetBasePath implements DocumentAccessor.
func (d *OAS3Document) GetBasePath() string { return "" }

// GetSchemes implements DocumentAccessor.
func (d *OAS3Document) GetSchemes() []string { return nil }

// GetConsumes implements DocumentAccessor.
func (d *OAS3Document) GetConsumes() []string { return nil }

// GetProduces implements DocumentAccessor.
func (d *OAS3Document) GetProduces() []string { return nil }

// OperationConsumes implements DocumentAccessor. The media types are the keys
// of the request body content, sorted.
func (d *OAS3Document) OperationConsumes(op *Operation) []string {
	if op == nil || op.RequestBody == nil || len(op.RequestBody.Content) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(op.RequestBody.Content))
}

// OperationProduces implements DocumentAccessor. The media types are the
// union of the response content keys, in response order. Content is a plain
// map, so the source order within one response is lost and its media types
// come out sorted.
func (d *OAS3Document) OperationProduces(op *Operation) []string {
	if op == nil {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, resp := range op.Responses.All() {
		if resp == nil {
			continue
		}
		for _, mt := range slices.Sorted(maps.Keys(resp.Content)) {
			if _, dup := seen[mt]; dup {
				continue
			}
			seen[mt] = struct{}{}
			out = append(out, mt)
		}
	}
	return out
}

// AddDefinition implements DocumentAccessor.
func (d *OAS3Document) AddDefinition(name string, schema *Schema) {
	if d.Components == nil {
		d.Components = &Components{}
	}
	if d.Components.Schemas == nil {
		d.Components.Schemas = NewOrderedMap[*Schema]()
	}
	d.Components.Schemas.Set(name, schema)
}

// ClearExtensions implements DocumentAccessor.
func (d *OAS3Document) ClearExtensions() {
	d.Extra = nil
	clearSchemaExtensions(d.GetSchemas())
	clearPathExtensions(d.Paths)
}

// ----- shared helpers -----

func clearSchemaExtensions(schemas *OrderedMap[*Schema]) {
	for _, s := range schemas.All() {
		if s != nil {
			s.Extra = nil
		}
	}
}

func clearPathExtensions(paths *Paths) {
	for _, item := range paths.All() {
		if item == nil {
			continue
		}
		item.Extra = nil
		for _, op := range item.Operations() {
			op.Extra = nil
		}
		if item.Trace != nil {
			item.Trace.Extra = nil
		}
	}
}

// LookupSecurityScheme returns the security scheme registered under name.
func LookupSecurityScheme(doc DocumentAccessor, name string) (*SecurityScheme, bool) {
	if doc == nil {
		return nil, false
	}
	s, ok := doc.GetSecuritySchemes()[name]
	return s, ok && s != nil
}

// OperationRef locates an operation inside a document.
type OperationRef struct {
	Path      string
	Method    string
	Operation *Operation
}

// FindOperation returns the first operation whose operationId equals id,
// searching paths in document order and methods in the fixed method order.
func FindOperation(doc DocumentAccessor, id string) (OperationRef, bool) {
	if doc == nil {
		return OperationRef{}, false
	}
	for path, item := range doc.GetPaths().All() {
		for method, op := range item.Operations() {
			if op.OperationID == id {
				return OperationRef{Path: path, Method: method, Operation: op}, true
			}
		}
	}
	return OperationRef{}, false
}

// OperationIDs lists every operationId of the document, in search order.
func OperationIDs(doc DocumentAccessor) []string {
	if doc == nil {
		return nil
	}
	var ids []string
	for _, item := range doc.GetPaths().All() {
		for _, op := range item.Operations() {
			if op.OperationID != "" {
				ids = append(ids, op.OperationID)
			}
		}
	}
	return ids
}
