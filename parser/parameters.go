package parser

// Parameter locations
const (
	ParamInQuery    = "query"
	ParamInHeader   = "header"
	ParamInPath     = "path"
	ParamInCookie   = "cookie"   // OAS 3.0+
	ParamInFormData = "formData" // OAS 2.0
	ParamInBody     = "body"     // OAS 2.0
)

// Parameter describes a single operation parameter
type Parameter struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	In          string `yaml:"in,omitempty" json:"in,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Schema is used by OAS 2.0 body parameters and by every OAS 3.x parameter
	Schema *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`

	// OAS 3.0+ fields
	Style   string                `yaml:"style,omitempty" json:"style,omitempty"`
	Explode *bool                 `yaml:"explode,omitempty" json:"explode,omitempty"`
	Example any                   `yaml:"example,omitempty" json:"example,omitempty"`
	Content map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`

	// OAS 2.0 primitive view for non-body parameters
	Type             string `yaml:"type,omitempty" json:"type,omitempty"`
	Format           string `yaml:"format,omitempty" json:"format,omitempty"`
	AllowEmptyValue  bool   `yaml:"allowEmptyValue,omitempty" json:"allowEmptyValue,omitempty"`
	Items            *Items `yaml:"items,omitempty" json:"items,omitempty"`
	CollectionFormat string `yaml:"collectionFormat,omitempty" json:"collectionFormat,omitempty"`
	Default          any    `yaml:"default,omitempty" json:"default,omitempty"`
	Enum             []any  `yaml:"enum,omitempty" json:"enum,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// SetExtension stores a specification extension on the parameter.
func (p *Parameter) SetExtension(name string, value any) {
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[name] = value
}

// Items describes the element type of an OAS 2.0 array parameter or header
type Items struct {
	Type             string `yaml:"type" json:"type"`
	Format           string `yaml:"format,omitempty" json:"format,omitempty"`
	Items            *Items `yaml:"items,omitempty" json:"items,omitempty"`
	CollectionFormat string `yaml:"collectionFormat,omitempty" json:"collectionFormat,omitempty"`
	Default          any    `yaml:"default,omitempty" json:"default,omitempty"`
	Enum             []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Extra            map[string]any `yaml:",inline" json:"-"`
}

// Header describes a response header
type Header struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// OAS 3.0+ fields
	Required bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Schema   *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`

	// OAS 2.0 fields
	Type             string `yaml:"type,omitempty" json:"type,omitempty"`
	Format           string `yaml:"format,omitempty" json:"format,omitempty"`
	Items            *Items `yaml:"items,omitempty" json:"items,omitempty"`
	CollectionFormat string `yaml:"collectionFormat,omitempty" json:"collectionFormat,omitempty"`
	Default          any    `yaml:"default,omitempty" json:"default,omitempty"`
	Enum             []any  `yaml:"enum,omitempty" json:"enum,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// SetExtension stores a specification extension on the header.
func (h *Header) SetExtension(name string, value any) {
	if h.Extra == nil {
		h.Extra = make(map[string]any)
	}
	h.Extra[name] = value
}

// RequestBody describes a single request body (OAS 3.0+)
type RequestBody struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// MediaType provides schema and examples for a media type (OAS 3.0+)
type MediaType struct {
	Schema   *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example  any            `yaml:"example,omitempty" json:"example,omitempty"`
	Examples map[string]any `yaml:"examples,omitempty" json:"examples,omitempty"`
	Extra    map[string]any `yaml:",inline" json:"-"`
}
