package parser

// Schema represents a JSON Schema fragment as used by definitions, body
// parameters and responses.
type Schema struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Type is a string in OAS 2.0/3.0 and may be a list of strings in OAS 3.1.
	// Use TypeName to read it.
	Type   any    `yaml:"type,omitempty" json:"type,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	Items                *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`

	Enum    []any `yaml:"enum,omitempty" json:"enum,omitempty"`
	Default any   `yaml:"default,omitempty" json:"default,omitempty"`
	Example any   `yaml:"example,omitempty" json:"example,omitempty"`

	ReadOnly bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	Nullable bool `yaml:"nullable,omitempty" json:"nullable,omitempty"` // OAS 3.0

	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// TypeName returns the schema type as a single name. For OAS 3.1 type lists
// the first non-"null" entry is returned.
func (s *Schema) TypeName() string {
	if s == nil {
		return ""
	}
	switch t := s.Type.(type) {
	case string:
		return t
	case []any:
		for _, v := range t {
			if name, ok := v.(string); ok && name != "null" {
				return name
			}
		}
	case []string:
		for _, name := range t {
			if name != "null" {
				return name
			}
		}
	}
	return ""
}

// Extension returns the value of the named specification extension.
func (s *Schema) Extension(name string) (any, bool) {
	if s == nil || s.Extra == nil {
		return nil, false
	}
	v, ok := s.Extra[name]
	return v, ok
}

// SetExtension stores a specification extension on the schema.
func (s *Schema) SetExtension(name string, value any) {
	if s.Extra == nil {
		s.Extra = make(map[string]any)
	}
	s.Extra[name] = value
}
