package parser

// OAS2Document represents an OpenAPI Specification 2.0 (Swagger) document
// Reference: https://spec.openapis.org/oas/v2.0.html
type OAS2Document struct {
	Swagger             string                     `yaml:"swagger" json:"swagger"` // Required: "2.0"
	Info                *Info                      `yaml:"info" json:"info"`       // Required
	Host                string                     `yaml:"host,omitempty" json:"host,omitempty"`
	BasePath            string                     `yaml:"basePath,omitempty" json:"basePath,omitempty"`
	Schemes             []string                   `yaml:"schemes,omitempty" json:"schemes,omitempty"`
	Consumes            []string                   `yaml:"consumes,omitempty" json:"consumes,omitempty"`
	Produces            []string                   `yaml:"produces,omitempty" json:"produces,omitempty"`
	Paths               *Paths                     `yaml:"paths" json:"paths"` // Required
	Definitions         *OrderedMap[*Schema]       `yaml:"definitions,omitempty" json:"definitions,omitempty"`
	Parameters          map[string]*Parameter      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Responses           map[string]*Response       `yaml:"responses,omitempty" json:"responses,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme `yaml:"securityDefinitions,omitempty" json:"securityDefinitions,omitempty"`
	Security            []SecurityRequirement      `yaml:"security,omitempty" json:"security,omitempty"`
	Tags                []*Tag                     `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs        *ExternalDocs              `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra      map[string]any `yaml:",inline" json:"-"`
	OASVersion OASVersion     `yaml:"-" json:"-"`
}

// NewOAS2Document returns an empty 2.0 document with its required members
// initialized.
func NewOAS2Document() *OAS2Document {
	return &OAS2Document{
		Swagger:    "2.0",
		Info:       &Info{},
		Paths:      NewOrderedMap[*PathItem](),
		OASVersion: OASVersion20,
	}
}

// HasTag reports whether a tag with the given name is declared.
func (d *OAS2Document) HasTag(name string) bool {
	for _, t := range d.Tags {
		if t != nil && t.Name == name {
			return true
		}
	}
	return false
}

// AddTag declares a tag unless one with the same name already exists.
func (d *OAS2Document) AddTag(name, description string) {
	if name == "" || d.HasTag(name) {
		return
	}
	d.Tags = append(d.Tags, &Tag{Name: name, Description: description})
}

// PathItem returns the path item for path, creating it if absent.
func (d *OAS2Document) PathItem(path string) *PathItem {
	if d.Paths == nil {
		d.Paths = NewOrderedMap[*PathItem]()
	}
	if item, ok := d.Paths.Get(path); ok && item != nil {
		return item
	}
	item := &PathItem{}
	d.Paths.Set(path, item)
	return item
}
