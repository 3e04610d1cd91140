// Package parser provides the document model for OpenAPI 2.0 and 3.x and a
// version-detecting parser for it.
//
// Documents are decoded from YAML or JSON. Paths, named schemas and
// responses are held in an [OrderedMap] so the order in which they were read
// or built is the order in which they are written back out. Specification
// extensions (x-*) are kept in the Extra field of each object and flattened
// into the JSON output.
//
// # Quick Start
//
//	result, err := parser.New().Parse("swagger.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	ref, ok := parser.FindOperation(result.Document, "getPetById")
//	if ok {
//		fmt.Println(ref.Method, ref.Path)
//	}
//
// # Version-agnostic access
//
// Both *OAS2Document and *OAS3Document implement [DocumentAccessor]. Code
// that only needs paths, schemas, security schemes or media types should work
// through the interface. Fields without an OAS 3.x counterpart (host,
// basePath, schemes and document-level consumes/produces) read as empty on
// 3.x documents.
//
// # Output
//
// [MarshalJSON] writes indented JSON without HTML escaping. [MarshalYAML]
// writes block-style YAML with the same key order.
//
// # Logging
//
// [Logger] is the structured logging interface accepted across restoas.
// [NopLogger] discards everything and [NewSlogAdapter] wraps a *slog.Logger.
package parser
