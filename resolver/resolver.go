package resolver

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/erraggy/restoas/internal/resource"
	"github.com/erraggy/restoas/oaserrors"
	"github.com/erraggy/restoas/parser"
)

// SpecLoader reads the content of a specification URI.
type SpecLoader interface {
	Load(ctx context.Context, uri string) ([]byte, error)
}

// Resolver turns operations of OpenAPI specifications into endpoint
// descriptors. A Resolver holds no per-call state and is safe for concurrent
// use.
type Resolver struct {
	loader    SpecLoader
	component Overrides
	rest      RestConfigurations
	logger    parser.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLoader sets the loader used to read specifications. The default is a
// resource.Loader with an empty class path.
func WithLoader(l SpecLoader) Option {
	return func(r *Resolver) {
		r.loader = l
	}
}

// WithComponent sets the component level overrides.
func WithComponent(o Overrides) Option {
	return func(r *Resolver) {
		r.component = o
	}
}

// WithRestConfigurations sets the REST configuration snapshot consulted for
// hosts and context paths.
func WithRestConfigurations(c RestConfigurations) Option {
	return func(r *Resolver) {
		r.rest = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(l parser.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// New returns a Resolver. The component overrides are validated here.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = parser.LoggerOrNop(r.logger)
	if r.loader == nil {
		r.loader = resource.New(resource.WithLogger(r.logger))
	}
	if err := r.component.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateEndpointFromURI parses an endpoint URI of the form
// component:[specificationUri#]operationId and resolves it.
func (r *Resolver) CreateEndpointFromURI(ctx context.Context, uri string, opts EndpointOptions) (*EndpointDescriptor, error) {
	eu, err := ParseEndpointURI(uri, r.component.SpecificationURI)
	if err != nil {
		return nil, err
	}
	opts.AssignedComponentName = eu.ComponentName
	return r.CreateEndpoint(ctx, eu.SpecificationURI, eu.OperationID, opts)
}

// CreateEndpoint loads the specification at specURI and resolves
// operationID into an endpoint descriptor. An empty specURI falls back to the
// component's specification URI and then to DefaultSpecificationURI.
func (r *Resolver) CreateEndpoint(ctx context.Context, specURI, operationID string, opts EndpointOptions) (*EndpointDescriptor, error) {
	if strings.TrimSpace(operationID) == "" {
		return nil, notEmpty("operationId", operationID)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	specURI = strings.TrimSpace(specURI)
	if specURI == "" {
		specURI = r.component.SpecificationURI
	}
	if specURI == "" {
		specURI = DefaultSpecificationURI
	}
	if opts.AssignedComponentName == "" {
		opts.AssignedComponentName = DefaultComponentName
	}

	doc, err := r.Load(ctx, specURI)
	if err != nil {
		return nil, err
	}
	return r.Resolve(doc, specURI, operationID, opts)
}

// Load reads and parses the specification at uri. Every failure, including
// a cancelled ctx, is a *oaserrors.SpecLoadError.
func (r *Resolver) Load(ctx context.Context, uri string) (parser.DocumentAccessor, error) {
	data, err := r.loader.Load(ctx, uri)
	if err != nil {
		msg := "failed to read resource"
		if errors.Is(err, resource.ErrNotFound) {
			msg = "resource not found"
		}
		return nil, &oaserrors.SpecLoadError{URI: uri, Message: msg, Cause: err}
	}
	p := parser.New()
	p.Logger = r.logger
	res, err := p.ParseBytes(data)
	if err != nil {
		return nil, &oaserrors.SpecLoadError{URI: uri, Message: "failed to parse specification", Cause: err}
	}
	r.logger.Debug("loaded specification", "uri", uri, "version", res.Version)
	return res.Document, nil
}

// Resolve builds the descriptor of operationID from an already loaded
// document. specURI is only used for host derivation and error messages.
func (r *Resolver) Resolve(doc parser.DocumentAccessor, specURI, operationID string, opts EndpointOptions) (*EndpointDescriptor, error) {
	if opts.AssignedComponentName == "" {
		opts.AssignedComponentName = DefaultComponentName
	}
	ref, ok := parser.FindOperation(doc, operationID)
	if !ok {
		return nil, &oaserrors.UnknownOperationError{
			OperationID:      operationID,
			SpecificationURI: specURI,
			Available:        parser.OperationIDs(doc),
		}
	}
	item, _ := doc.GetPaths().Get(ref.Path)

	host, err := r.determineHost(doc, specURI, opts)
	if err != nil {
		return nil, err
	}
	basePath := r.determineBasePath(doc, opts)
	path := ResolveURI(ref.Path, pathParameterValues(item, ref.Operation, opts.Parameters))
	consumes := determineOption(doc.GetConsumes(), doc.OperationConsumes(ref.Operation),
		r.component.Consumes, opts.Consumes)
	produces := determineOption(doc.GetProduces(), doc.OperationProduces(ref.Operation),
		r.component.Produces, opts.Produces)

	d := &EndpointDescriptor{
		Method:                strings.ToUpper(ref.Method),
		OperationID:           operationID,
		SpecificationURI:      specURI,
		AssignedComponentName: opts.AssignedComponentName,
		ComponentName:         firstNonEmpty(opts.ComponentName, r.component.ComponentName),
		Host:                  host,
		BasePath:              basePath,
		PathTemplate:          ref.Path,
		Path:                  path,
		BaseURL:               host + joinBasePath(basePath, path),
		QueryTemplate:         QueryTemplate(doc, item, ref.Operation, opts.Parameters),
		Consumes:              consumes,
		Produces:              produces,
	}
	d.Parameters, d.Nested = r.producerParameters(d, opts)

	r.logger.Debug("resolved endpoint",
		"operationId", operationID,
		"method", d.Method,
		"url", d.BaseURL,
		"query", d.QueryTemplate)
	return d, nil
}

// determineBasePath applies the base path precedence: endpoint, component,
// specification, specific REST configuration, default REST configuration,
// then "/".
func (r *Resolver) determineBasePath(doc parser.DocumentAccessor, opts EndpointOptions) string {
	if opts.BasePath != "" {
		return opts.BasePath
	}
	if r.component.BasePath != "" {
		return r.component.BasePath
	}
	if bp := doc.GetBasePath(); bp != "" {
		return bp
	}
	if cp := contextPath(r.rest.Component(opts.AssignedComponentName)); cp != "" {
		return cp
	}
	if cp := contextPath(r.rest.Component(DefaultComponentName)); cp != "" {
		return cp
	}
	return "/"
}

// determineHost applies the host precedence: endpoint, component, specific,
// default and global REST configurations, the host and schemes of the
// specification, then the specification URI itself when it is http(s).
// The specification host only counts when paired with an http(s) scheme,
// taken from the specification schemes or else from specURI; a host under a
// file: or classpath: URI with no schemes is indeterminate.
func (r *Resolver) determineHost(doc parser.DocumentAccessor, specURI string, opts EndpointOptions) (string, error) {
	if opts.Host != "" {
		return strings.TrimSuffix(opts.Host, "/"), nil
	}
	if r.component.Host != "" {
		return strings.TrimSuffix(r.component.Host, "/"), nil
	}
	for _, rc := range []*RestConfiguration{
		r.rest.Component(opts.AssignedComponentName),
		r.rest.Component(DefaultComponentName),
		r.rest.Global,
	} {
		if h := HostFrom(rc); h != "" {
			return h, nil
		}
	}

	u, err := url.Parse(specURI)
	if err != nil {
		u = &url.URL{}
	}
	if specHost := doc.GetHost(); specHost != "" {
		if scheme := PickBestScheme(strings.ToLower(u.Scheme), doc.GetSchemes()); isHTTPScheme(scheme) {
			return scheme + "://" + specHost, nil
		}
	}
	if isHTTPScheme(strings.ToLower(u.Scheme)) && u.Host != "" {
		return (&url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host}).String(), nil
	}

	return "", &oaserrors.HostIndeterminateError{
		ComponentName:    opts.AssignedComponentName,
		DefaultComponent: DefaultComponentName,
	}
}

// producerParameters assembles the flat and nested parameters handed to
// the HTTP producer.
func (r *Resolver) producerParameters(d *EndpointDescriptor, opts EndpointOptions) (map[string]any, map[string]map[string]any) {
	params := map[string]any{ParamHost: d.Host}
	if d.ComponentName != "" {
		params[ParamProducerComponentName] = d.ComponentName
	}
	if d.Consumes != "" {
		params[ParamConsumes] = d.Consumes
	}
	if d.Produces != "" {
		params[ParamProduces] = d.Produces
	}
	if d.QueryTemplate != "" {
		params[ParamQueryParameters] = d.QueryTemplate
	}

	component := make(map[string]any)
	if opts.UseGlobalSSLContextParameters || r.component.UseGlobalSSLContextParameters {
		component[ParamUseGlobalSSLContextParameters] = true
	}
	ssl := opts.SSLContextParameters
	if ssl == nil {
		ssl = r.component.SSLContextParameters
	}
	if ssl != nil {
		component[ParamSSLContextParameters] = ssl
	}
	if len(component) == 0 {
		return params, nil
	}
	return params, map[string]map[string]any{NestedComponent: component}
}

// determineOption returns the first set level: endpoint, component,
// operation, then specification. Lists are joined with ", ".
func determineOption(specLevel, operationLevel []string, componentLevel, endpointLevel string) string {
	switch {
	case endpointLevel != "":
		return endpointLevel
	case componentLevel != "":
		return componentLevel
	case len(operationLevel) > 0:
		return strings.Join(operationLevel, ", ")
	case len(specLevel) > 0:
		return strings.Join(specLevel, ", ")
	}
	return ""
}

func joinBasePath(basePath, path string) string {
	basePath = strings.TrimSuffix(basePath, "/")
	if path == "" {
		return basePath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return basePath + path
}

func isHTTPScheme(s string) bool {
	return s == "http" || s == "https"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
