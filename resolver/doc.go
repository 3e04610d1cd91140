// Package resolver resolves an operation of an OpenAPI 2.0 or 3.x
// specification into an EndpointDescriptor: the method, absolute URL, query
// template and media types an HTTP producer needs to call it.
//
// # Quick Start
//
//	r, err := resolver.New(resolver.WithRestConfigurations(resolver.RestConfigurations{
//		Global: &resolver.RestConfiguration{Scheme: "https", Host: "api.example.com"},
//	}))
//	if err != nil {
//		log.Fatal(err)
//	}
//	desc, err := r.CreateEndpointFromURI(ctx, "petstore:classpath:petstore.json#getPetById",
//		resolver.EndpointOptions{Parameters: map[string]string{"petId": "42"}})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(desc.Method, desc.URL())
//
// # Precedence
//
// Every value is taken from the first level that sets it. For the base path:
// endpoint options, component options, the specification's basePath, the
// context path of the REST configuration registered for the assigned
// component, the one registered for DefaultComponentName, then "/".
//
// For the host: endpoint options, component options, the REST configuration
// of the assigned component, of DefaultComponentName, the global REST
// configuration, the specification's host with its best scheme (https before
// http), then the scheme and authority of the specification URI when it is
// http or https. OAS 3.x servers are not consulted. When nothing applies the
// error is a *oaserrors.HostIndeterminateError.
//
// Consumes and produces come from the endpoint options, the component
// options, the operation and then the specification.
//
// # Query template
//
// Query parameters render as name={name} when required and name={name?}
// when optional. Required parameters synthesized from apiKey schemes passed
// in the query come first. Parameters with a literal value in
// EndpointOptions.Parameters render as name=value, percent-encoded.
package resolver
