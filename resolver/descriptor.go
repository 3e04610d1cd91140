package resolver

// Keys of EndpointDescriptor.Parameters.
const (
	ParamProducerComponentName = "producerComponentName"
	ParamHost                  = "host"
	ParamConsumes              = "consumes"
	ParamProduces              = "produces"
	ParamQueryParameters       = "queryParameters"
)

// Keys of the nested component parameters.
const (
	NestedComponent                    = "component"
	ParamSSLContextParameters          = "sslContextParameters"
	ParamUseGlobalSSLContextParameters = "useGlobalSslContextParameters"
)

// EndpointDescriptor is everything an HTTP producer needs to issue the
// request of one operation.
type EndpointDescriptor struct {
	// Method is the upper-case HTTP method.
	Method string `json:"method" yaml:"method"`
	// OperationID is the resolved operation.
	OperationID string `json:"operationId" yaml:"operationId"`
	// SpecificationURI is where the specification was loaded from.
	SpecificationURI string `json:"specificationUri" yaml:"specificationUri"`
	// AssignedComponentName is the component the endpoint was addressed with.
	AssignedComponentName string `json:"assignedComponentName" yaml:"assignedComponentName"`
	// ComponentName is the id of the HTTP producer, empty when any will do.
	ComponentName string `json:"componentName,omitempty" yaml:"componentName,omitempty"`

	// Host is scheme://host[:port].
	Host string `json:"host" yaml:"host"`
	// BasePath is the resolved base path.
	BasePath string `json:"basePath" yaml:"basePath"`
	// PathTemplate is the path as declared by the specification.
	PathTemplate string `json:"pathTemplate" yaml:"pathTemplate"`
	// Path is PathTemplate with the literal path parameters substituted.
	Path string `json:"path" yaml:"path"`
	// BaseURL is Host, BasePath and Path joined.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	// QueryTemplate is the rendered query string template.
	QueryTemplate string `json:"queryTemplate,omitempty" yaml:"queryTemplate,omitempty"`

	// Consumes lists Content-Type candidates, joined with ", ".
	Consumes string `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	// Produces lists Accept candidates, joined with ", ".
	Produces string `json:"produces,omitempty" yaml:"produces,omitempty"`

	// Parameters is the flat parameter map handed to the HTTP producer.
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
	// Nested holds parameter groups by prefix, e.g. "component".
	Nested map[string]map[string]any `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// URL returns BaseURL followed by the query template, if any.
func (d *EndpointDescriptor) URL() string {
	if d.QueryTemplate == "" {
		return d.BaseURL
	}
	return d.BaseURL + "?" + d.QueryTemplate
}
