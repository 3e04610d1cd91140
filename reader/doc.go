// Package reader builds OpenAPI 2.0 documents from REST route descriptions.
//
// A route description is a list of [Rest] groups, each a base path with
// [Verb] entries below it. [Read] walks the groups and produces a
// *parser.OAS2Document with paths, operations, parameters, responses,
// security definitions, tags and definitions.
//
// # Quick Start
//
//	rests := []*reader.Rest{{
//		Path: "/hello",
//		Verbs: []*reader.Verb{{
//			Method: "get",
//			URI:    "/hi/{name}",
//			Params: []*reader.Param{{Name: "name", Type: reader.ParamPath}},
//		}},
//	}}
//	doc, err := reader.Read(rests, "", reader.Config{Title: "Hello", Version: "1.0"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := parser.MarshalJSON(doc)
//
// # Ordering
//
// Verbs of a group are sorted by URI, with "{" sorting before letters, and
// then by method. Definitions appear in the order their classes are first
// met. Both orders are visible in the output.
//
// # Types
//
// Type names follow the typemap package: primitive aliases map to inline
// schemas and qualified class names are resolved through a [ClassResolver]
// into definitions tagged with x-className. [StaticClassResolver] serves
// models declared up front, for example in a route file loaded with
// [LoadRoutes]; [TypeRegistry] derives models from Go struct types.
//
// # Quirks kept for compatibility
//
// Every basic security scheme is written under the key "BasicAuth" with
// type "basicAuth". Parameters carry only their first example.
package reader
