package reader

import (
	"cmp"
	"strings"
)

// ParamType is the location of a route parameter.
type ParamType string

// Parameter locations understood by the reader.
const (
	ParamBody     ParamType = "body"
	ParamFormData ParamType = "formData"
	ParamHeader   ParamType = "header"
	ParamPath     ParamType = "path"
	ParamQuery    ParamType = "query"
)

// SecurityKind selects the variant of a SecurityDefinition.
type SecurityKind string

// Security definition kinds.
const (
	SecurityBasic  SecurityKind = "basic"
	SecurityAPIKey SecurityKind = "apiKey"
	SecurityOAuth2 SecurityKind = "oauth2"
)

// Property is an ordered key/value pair. Examples and OAuth2 scopes are
// declared as properties.
type Property struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Rest describes a group of verbs sharing a base path.
type Rest struct {
	// Path is the base path every verb URI is joined to.
	Path string `yaml:"path"`
	// ID, when set, becomes the operationId of every verb in the group.
	ID string `yaml:"id,omitempty"`
	// Tag groups the operations; defaults to Path without its leading "/".
	Tag         string `yaml:"tag,omitempty"`
	Description string `yaml:"description,omitempty"`
	// Consumes and Produces are comma-separated media types used by verbs
	// that do not declare their own.
	Consumes string `yaml:"consumes,omitempty"`
	Produces string `yaml:"produces,omitempty"`
	// APIDocs set to false hides the verbs from the document unless a verb
	// overrides it.
	APIDocs             *bool                 `yaml:"apiDocs,omitempty"`
	SecurityDefinitions []*SecurityDefinition `yaml:"securityDefinitions,omitempty"`
	Verbs               []*Verb               `yaml:"verbs"`
}

// SecurityDefinition declares one security scheme. Kind selects which of the
// remaining fields apply.
type SecurityDefinition struct {
	Kind        SecurityKind `yaml:"kind"`
	Key         string       `yaml:"key"`
	Description string       `yaml:"description,omitempty"`

	// apiKey
	Name     string `yaml:"name,omitempty"`
	InHeader bool   `yaml:"inHeader,omitempty"`

	// oauth2
	Flow             string     `yaml:"flow,omitempty"`
	AuthorizationURL string     `yaml:"authorizationUrl,omitempty"`
	TokenURL         string     `yaml:"tokenUrl,omitempty"`
	Scopes           []Property `yaml:"scopes,omitempty"`
}

// SecurityRef requires a declared scheme on a verb. Scopes is a comma or
// whitespace separated list.
type SecurityRef struct {
	Key    string `yaml:"key"`
	Scopes string `yaml:"scopes,omitempty"`
}

// Verb is a single HTTP method on a URI below the Rest path.
type Verb struct {
	Method      string `yaml:"method"`
	URI         string `yaml:"uri,omitempty"`
	RouteID     string `yaml:"routeId,omitempty"`
	Description string `yaml:"description,omitempty"`
	// Type is the input type and OutType the output type; both are type
	// names as understood by the typemap package.
	Type     string         `yaml:"type,omitempty"`
	OutType  string         `yaml:"outType,omitempty"`
	Consumes string         `yaml:"consumes,omitempty"`
	Produces string         `yaml:"produces,omitempty"`
	APIDocs  *bool          `yaml:"apiDocs,omitempty"`
	Security []*SecurityRef `yaml:"security,omitempty"`
	Params   []*Param       `yaml:"params,omitempty"`
	// ResponseMsgs are merged into the responses by status code.
	ResponseMsgs []*ResponseMsg `yaml:"responseMessages,omitempty"`
}

// Param is a verb parameter.
type Param struct {
	Name        string    `yaml:"name"`
	Type        ParamType `yaml:"type,omitempty"`
	Description string    `yaml:"description,omitempty"`
	// Required defaults to true.
	Required *bool `yaml:"required,omitempty"`
	// DataType defaults to "string" for non-body parameters. Body
	// parameters without a DataType use the verb's Type.
	DataType         string     `yaml:"dataType,omitempty"`
	DataFormat       string     `yaml:"dataFormat,omitempty"`
	ArrayType        string     `yaml:"arrayType,omitempty"`
	CollectionFormat string     `yaml:"collectionFormat,omitempty"`
	DefaultValue     string     `yaml:"defaultValue,omitempty"`
	AllowableValues  []string   `yaml:"allowableValues,omitempty"`
	Examples         []Property `yaml:"examples,omitempty"`
}

// ResponseMsg describes the response for one status code.
type ResponseMsg struct {
	// Code defaults to "200".
	Code          string            `yaml:"code,omitempty"`
	Message       string            `yaml:"message,omitempty"`
	ResponseModel string            `yaml:"responseModel,omitempty"`
	Headers       []*ResponseHeader `yaml:"headers,omitempty"`
	Examples      []Property        `yaml:"examples,omitempty"`
}

// ResponseHeader describes a header sent with a response.
type ResponseHeader struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description,omitempty"`
	DataType        string   `yaml:"dataType,omitempty"`
	DataFormat      string   `yaml:"dataFormat,omitempty"`
	ArrayType       string   `yaml:"arrayType,omitempty"`
	AllowableValues []string `yaml:"allowableValues,omitempty"`
	Example         string   `yaml:"example,omitempty"`
}

// Bool returns a pointer to b, for the optional flags of the route model.
func Bool(b bool) *bool {
	return &b
}

// documented reports whether v appears in the document. The verb flag
// wins over the rest flag; unset means documented.
func documented(rest *Rest, v *Verb) bool {
	if v.APIDocs != nil {
		return *v.APIDocs
	}
	if rest.APIDocs != nil {
		return *rest.APIDocs
	}
	return true
}

// compareVerbs orders verbs by URI, with "{" sorting before letters, then
// by method.
func compareVerbs(a, b *Verb) int {
	ua := strings.ReplaceAll(a.URI, "{", "_")
	ub := strings.ReplaceAll(b.URI, "{", "_")
	if c := cmp.Compare(ua, ub); c != 0 {
		return c
	}
	return cmp.Compare(strings.ToLower(a.Method), strings.ToLower(b.Method))
}

// joinPath joins the rest base path and a verb URI with a single "/".
func joinPath(base, uri string) string {
	if uri == "" {
		if base == "" {
			return "/"
		}
		return base
	}
	if base == "" {
		return "/" + strings.TrimLeft(uri, "/")
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(uri, "/")
}

func (p *Param) required() bool {
	return p.Required == nil || *p.Required
}

func (p *Param) location() ParamType {
	if p.Type == "" {
		return ParamPath
	}
	return p.Type
}

func (m *ResponseMsg) code() string {
	if m.Code == "" {
		return "200"
	}
	return m.Code
}
