package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/restoas/resolver"
)

type resolveEndpointInput struct {
	URI           string            `json:"uri,omitempty"            jsonschema:"Endpoint URI: component:[specificationUri#]operationId"`
	Spec          *specInput        `json:"spec,omitempty"           jsonschema:"The OpenAPI document holding the operation. Use with operation_id instead of uri"`
	OperationID   string            `json:"operation_id,omitempty"   jsonschema:"operationId to resolve within spec"`
	Component     string            `json:"component,omitempty"      jsonschema:"Component name the endpoint is addressed with when spec is used (default rest-swagger)"`
	Host          string            `json:"host,omitempty"           jsonschema:"Scheme\\, host and port overriding the specification host"`
	BasePath      string            `json:"base_path,omitempty"      jsonschema:"Base path overriding the specification base path"`
	ComponentName string            `json:"component_name,omitempty" jsonschema:"Name of the HTTP producer component"`
	Consumes      string            `json:"consumes,omitempty"       jsonschema:"Content-Type sent with the request"`
	Produces      string            `json:"produces,omitempty"       jsonschema:"Accept value sent with the request"`
	Parameters    map[string]string `json:"parameters,omitempty"     jsonschema:"Literal values of path and query parameters"`
}

type resolveEndpointOutput struct {
	URL      string                       `json:"url"`
	Endpoint *resolver.EndpointDescriptor `json:"endpoint"`
}

func (in resolveEndpointInput) endpointOptions() resolver.EndpointOptions {
	return resolver.EndpointOptions{
		Overrides: resolver.Overrides{
			Host:          in.Host,
			BasePath:      in.BasePath,
			ComponentName: in.ComponentName,
			Consumes:      in.Consumes,
			Produces:      in.Produces,
		},
		AssignedComponentName: in.Component,
		Parameters:            in.Parameters,
	}
}

func (t *toolset) handleResolveEndpoint(ctx context.Context, _ *mcp.CallToolRequest, input resolveEndpointInput) (*mcp.CallToolResult, resolveEndpointOutput, error) {
	d, err := t.resolveEndpoint(ctx, input)
	if err != nil {
		return errResult(err), resolveEndpointOutput{}, nil
	}
	return nil, resolveEndpointOutput{URL: d.URL(), Endpoint: d}, nil
}

func (t *toolset) resolveEndpoint(ctx context.Context, input resolveEndpointInput) (*resolver.EndpointDescriptor, error) {
	opts := input.endpointOptions()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch {
	case input.URI != "" && input.Spec != nil:
		return nil, errors.New("provide either uri or spec, not both")
	case input.URI != "":
		if input.OperationID != "" || input.Component != "" {
			return nil, errors.New("operation_id and component are part of uri")
		}
		return t.resolver.CreateEndpointFromURI(ctx, input.URI, opts)
	case input.Spec != nil:
		if strings.TrimSpace(input.OperationID) == "" {
			return nil, errors.New("operation_id is required with spec")
		}
		result, err := input.Spec.resolve(ctx)
		if err != nil {
			return nil, err
		}
		return t.resolver.Resolve(result.Document, input.Spec.uri(), input.OperationID, opts)
	}
	return nil, errors.New("one of uri or spec must be provided")
}
