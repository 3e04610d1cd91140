package parser

import (
	"iter"
	"strings"

	"github.com/erraggy/restoas/internal/httputil"
)

// Paths holds the relative paths to the individual endpoints, in document
// order.
type Paths = OrderedMap[*PathItem]

// Responses maps status codes (or "default") to responses, in document order.
type Responses = OrderedMap[*Response]

// PathItem describes the operations available on a single path
type PathItem struct {
	Ref         string       `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`         // OAS 3.0+
	Description string       `yaml:"description,omitempty" json:"description,omitempty"` // OAS 3.0+
	Get         *Operation   `yaml:"get,omitempty" json:"get,omitempty"`
	Put         *Operation   `yaml:"put,omitempty" json:"put,omitempty"`
	Post        *Operation   `yaml:"post,omitempty" json:"post,omitempty"`
	Delete      *Operation   `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options     *Operation   `yaml:"options,omitempty" json:"options,omitempty"`
	Head        *Operation   `yaml:"head,omitempty" json:"head,omitempty"`
	Patch       *Operation   `yaml:"patch,omitempty" json:"patch,omitempty"`
	Trace       *Operation   `yaml:"trace,omitempty" json:"trace,omitempty"` // OAS 3.0+
	Parameters  []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// GetOperation returns the operation for the given HTTP method (any case).
func (p *PathItem) GetOperation(method string) *Operation {
	if p == nil {
		return nil
	}
	switch strings.ToLower(method) {
	case httputil.MethodGet:
		return p.Get
	case httputil.MethodPut:
		return p.Put
	case httputil.MethodPost:
		return p.Post
	case httputil.MethodDelete:
		return p.Delete
	case httputil.MethodPatch:
		return p.Patch
	case httputil.MethodHead:
		return p.Head
	case httputil.MethodOptions:
		return p.Options
	case httputil.MethodTrace:
		return p.Trace
	}
	return nil
}

// SetOperation stores op under the given HTTP method (any case). Unknown
// methods are ignored and reported as false.
func (p *PathItem) SetOperation(method string, op *Operation) bool {
	switch strings.ToLower(method) {
	case httputil.MethodGet:
		p.Get = op
	case httputil.MethodPut:
		p.Put = op
	case httputil.MethodPost:
		p.Post = op
	case httputil.MethodDelete:
		p.Delete = op
	case httputil.MethodPatch:
		p.Patch = op
	case httputil.MethodHead:
		p.Head = op
	case httputil.MethodOptions:
		p.Options = op
	case httputil.MethodTrace:
		p.Trace = op
	default:
		return false
	}
	return true
}

// Operations iterates over the operations of the path item in the fixed
// method order get, put, post, delete, patch, head, options. Trace is not
// visited.
func (p *PathItem) Operations() iter.Seq2[string, *Operation] {
	return func(yield func(string, *Operation) bool) {
		if p == nil {
			return
		}
		for _, method := range httputil.MethodOrder {
			op := p.GetOperation(method)
			if op == nil {
				continue
			}
			if !yield(method, op) {
				return
			}
		}
	}
}

// Operation describes a single API operation on a path
type Operation struct {
	Tags        []string              `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary     string                `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string                `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Consumes    []string              `yaml:"consumes,omitempty" json:"consumes,omitempty"` // OAS 2.0
	Produces    []string              `yaml:"produces,omitempty" json:"produces,omitempty"` // OAS 2.0
	Parameters  []*Parameter          `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody          `yaml:"requestBody,omitempty" json:"requestBody,omitempty"` // OAS 3.0+
	Responses   *Responses            `yaml:"responses" json:"responses"`
	Schemes     []string              `yaml:"schemes,omitempty" json:"schemes,omitempty"` // OAS 2.0
	Deprecated  bool                  `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Security    []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// SetExtension stores a specification extension on the operation.
func (o *Operation) SetExtension(name string, value any) {
	if o.Extra == nil {
		o.Extra = make(map[string]any)
	}
	o.Extra[name] = value
}

// Response describes a single response from an API operation. Description
// is always written since OAS 2.0 requires it.
type Response struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description" json:"description"`
	Schema      *Schema               `yaml:"schema,omitempty" json:"schema,omitempty"` // OAS 2.0
	Headers     map[string]*Header    `yaml:"headers,omitempty" json:"headers,omitempty"`
	Examples    map[string]any        `yaml:"examples,omitempty" json:"examples,omitempty"` // OAS 2.0
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`   // OAS 3.0+
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// ParametersIn returns the parameters of op located in the given place
// (query, header, path, formData, body or cookie), in declaration order.
func ParametersIn(op *Operation, in string) []*Parameter {
	if op == nil {
		return nil
	}
	var out []*Parameter
	for _, p := range op.Parameters {
		if p != nil && p.In == in {
			out = append(out, p)
		}
	}
	return out
}
