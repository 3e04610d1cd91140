// Package restoas translates between REST route descriptions and OpenAPI
// documents, and resolves OpenAPI operations into outbound request
// descriptors.
//
// # Overview
//
// The module is organized around a handful of packages:
//
//   - parser: OpenAPI 2.0 and 3.x document models with a version-agnostic accessor
//   - typemap: maps type names to schema fragments and registers definitions
//   - reader: builds a Swagger 2.0 document from REST route descriptions
//   - resolver: loads a specification and resolves an operation into an EndpointDescriptor
//   - forwarded: rewrites basePath, host and schemes from X-Forwarded-* headers
//   - walker: visits operations and emits typed calls to a Sink
//   - config: TOML configuration with per-environment overlays
//   - oaserrors: typed errors shared by all packages
//
// The command line tool lives in cmd/restoas. It serves generated documents
// over HTTP (internal/docserver), checks them against the Swagger 2.0 schema
// (internal/conformance) and exposes its operations as MCP tools
// (internal/mcpserver).
//
// # Quick Start
//
// Generate a document from a routes file:
//
//	rf, err := reader.LoadRoutesFile("routes.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := reader.Read(rf.Rests, "", reader.Config{Title: "Pets", Version: "1.0"},
//		reader.WithClassResolver(rf.ClassResolver()))
//
// Resolve an operation:
//
//	r, err := resolver.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	d, err := r.CreateEndpointFromURI(ctx,
//		"petstore:https://petstore.swagger.io/v2/swagger.json#getPetById",
//		resolver.EndpointOptions{Parameters: map[string]string{"petId": "42"}})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(d.Method, d.URL())
//
// See examples/quickstart for a runnable version.
package restoas
