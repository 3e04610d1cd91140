package resolver

import (
	"net/url"
	"strings"

	"github.com/erraggy/restoas/internal/httputil"
	"github.com/erraggy/restoas/oaserrors"
)

// Overrides are the options that can be set on the component or on a single
// endpoint. Endpoint values win over component values; empty fields defer to
// the next level.
type Overrides struct {
	// BasePath replaces the base path of the specification.
	BasePath string `toml:"base_path" yaml:"basePath,omitempty" json:"basePath,omitempty"`
	// Host is scheme://host[:port] of the API, without a path.
	Host string `toml:"host" yaml:"host,omitempty" json:"host,omitempty"`
	// ComponentName is the id of the HTTP producer that executes requests.
	ComponentName string `toml:"component_name" yaml:"componentName,omitempty" json:"componentName,omitempty"`
	// Consumes lists the media ranges sent as Content-Type candidates.
	Consumes string `toml:"consumes" yaml:"consumes,omitempty" json:"consumes,omitempty"`
	// Produces lists the media ranges sent as Accept candidates.
	Produces string `toml:"produces" yaml:"produces,omitempty" json:"produces,omitempty"`
	// SpecificationURI is used when the endpoint URI names none.
	SpecificationURI string `toml:"specification_uri" yaml:"specificationUri,omitempty" json:"specificationUri,omitempty"`

	// SSLContextParameters is handed to the HTTP producer unchanged.
	SSLContextParameters any `toml:"-" yaml:"-" json:"-"`
	// UseGlobalSSLContextParameters asks the producer to use its global TLS
	// settings.
	UseGlobalSSLContextParameters bool `toml:"use_global_ssl_context_parameters" yaml:"useGlobalSslContextParameters,omitempty" json:"useGlobalSslContextParameters,omitempty"`
}

// Validate checks the set fields. Violations are reported as
// *oaserrors.InvalidArgumentError.
func (o Overrides) Validate() error {
	if o.BasePath != "" && strings.TrimSpace(o.BasePath) == "" {
		return notEmpty("basePath", o.BasePath)
	}
	if o.ComponentName != "" && strings.TrimSpace(o.ComponentName) == "" {
		return notEmpty("componentName", o.ComponentName)
	}
	if o.Host != "" {
		if err := validateHost(o.Host); err != nil {
			return err
		}
	}
	if o.Consumes != "" && !httputil.IsMediaRangeList(o.Consumes) {
		return &oaserrors.InvalidArgumentError{
			Argument: "consumes",
			Value:    o.Consumes,
			Message:  "must be a comma-separated list of media ranges",
		}
	}
	if o.Produces != "" && !httputil.IsMediaRangeList(o.Produces) {
		return &oaserrors.InvalidArgumentError{
			Argument: "produces",
			Value:    o.Produces,
			Message:  "must be a comma-separated list of media ranges",
		}
	}
	return nil
}

// EndpointOptions configure a single CreateEndpoint call.
type EndpointOptions struct {
	Overrides

	// AssignedComponentName is the scheme the endpoint was addressed with.
	// It selects the specific REST configuration and defaults to
	// DefaultComponentName.
	AssignedComponentName string

	// Parameters are literal values. Path placeholders and query parameters
	// with a value here are substituted instead of templated.
	Parameters map[string]string
}

func notEmpty(name, value string) error {
	return &oaserrors.InvalidArgumentError{Argument: name, Value: value, Message: "must not be empty"}
}

// validateHost accepts absolute http and https URIs without path, query or
// fragment.
func validateHost(host string) error {
	invalid := func(msg string, cause error) error {
		return &oaserrors.InvalidArgumentError{Argument: "host", Value: host, Message: msg, Cause: cause}
	}
	u, err := url.Parse(host)
	if err != nil {
		return invalid("must be an absolute URI, e.g. http://api.example.com:8080", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return invalid("must be an absolute URI, e.g. http://api.example.com:8080", nil)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("scheme must be http or https", nil)
	}
	if u.Path != "" && u.Path != "/" {
		return invalid("must not contain a path, set basePath instead", nil)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return invalid("must not contain a query or a fragment", nil)
	}
	return nil
}
