package resolver

import (
	"strings"

	"github.com/erraggy/restoas/oaserrors"
)

const (
	// DefaultComponentName is the component name whose REST configuration
	// is consulted after the assigned component's.
	DefaultComponentName = "rest-swagger"

	// DefaultSpecificationURI is loaded when neither the endpoint URI nor the
	// component configuration name a specification.
	DefaultSpecificationURI = "classpath:swagger.json"
)

// EndpointURI is a parsed endpoint URI of the form
// component:[specificationUri#]operationId.
type EndpointURI struct {
	// ComponentName is the URI scheme the endpoint was addressed with. It
	// selects the specific REST configuration.
	ComponentName string
	// SpecificationURI locates the specification document.
	SpecificationURI string
	// OperationID names the operation to invoke.
	OperationID string
}

// String renders the URI in its canonical form.
func (u EndpointURI) String() string {
	return u.ComponentName + ":" + u.SpecificationURI + "#" + u.OperationID
}

// ParseEndpointURI splits uri into its component name, specification URI and
// operation id. The specification URI is the text before '#'; when it is
// empty componentSpecURI is used and, failing that,
// DefaultSpecificationURI. Without a '#' the whole remainder is the
// operation id.
func ParseEndpointURI(uri, componentSpecURI string) (EndpointURI, error) {
	i := strings.Index(uri, ":")
	if i <= 0 {
		return EndpointURI{}, &oaserrors.InvalidArgumentError{
			Argument: "uri",
			Value:    uri,
			Message:  "expected component:[specificationUri#]operationId",
		}
	}
	out := EndpointURI{ComponentName: uri[:i]}
	remaining := strings.TrimPrefix(uri[i+1:], "//")

	specURI := ""
	if hash := strings.Index(remaining, "#"); hash >= 0 {
		specURI = strings.TrimSpace(remaining[:hash])
		out.OperationID = strings.TrimSpace(remaining[hash+1:])
	} else {
		out.OperationID = strings.TrimSpace(remaining)
	}

	switch {
	case specURI != "":
		out.SpecificationURI = specURI
	case componentSpecURI != "":
		out.SpecificationURI = componentSpecURI
	default:
		out.SpecificationURI = DefaultSpecificationURI
	}

	if out.OperationID == "" {
		return EndpointURI{}, &oaserrors.InvalidArgumentError{
			Argument: "operationId",
			Value:    uri,
			Message:  "must not be empty",
		}
	}
	return out, nil
}
