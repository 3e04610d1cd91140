package parser

// OAS3Document represents an OpenAPI Specification 3.x document
// Reference: https://spec.openapis.org/oas/v3.0.3.html
type OAS3Document struct {
	OpenAPI      string                `yaml:"openapi" json:"openapi"` // Required: "3.0.x" or "3.1.x"
	Info         *Info                 `yaml:"info" json:"info"`       // Required
	Servers      []*Server             `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths        *Paths                `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components   *Components           `yaml:"components,omitempty" json:"components,omitempty"`
	Security     []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	Tags         []*Tag                `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs         `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra      map[string]any `yaml:",inline" json:"-"`
	OASVersion OASVersion     `yaml:"-" json:"-"`
}

// NewOAS3Document returns an empty 3.0.3 document with its required
// members initialized.
func NewOAS3Document() *OAS3Document {
	return &OAS3Document{
		OpenAPI:    "3.0.3",
		Info:       &Info{},
		Paths:      NewOrderedMap[*PathItem](),
		OASVersion: OASVersion30,
	}
}

// Components holds reusable objects for the specification (OAS 3.0+)
type Components struct {
	Schemas         *OrderedMap[*Schema]       `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Responses       map[string]*Response       `yaml:"responses,omitempty" json:"responses,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBodies   map[string]*RequestBody    `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Headers         map[string]*Header         `yaml:"headers,omitempty" json:"headers,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
	Extra           map[string]any             `yaml:",inline" json:"-"`
}
