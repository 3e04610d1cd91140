package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/restoas/oaserrors"
)

// RouteFile is the on-disk form of a set of rests and the models their
// type names refer to.
//
//	rests:
//	  - path: /pets
//	    verbs:
//	      - method: get
//	        uri: /{id}
//	        outType: com.acme.Pet
//	models:
//	  - className: com.acme.Pet
//	    schema: {type: object}
type RouteFile struct {
	Rests  []*Rest     `yaml:"rests"`
	Models []ModelDecl `yaml:"models,omitempty"`
}

// ModelDecl declares a model and the classes its schema refers to.
type ModelDecl struct {
	Model     `yaml:",inline"`
	DependsOn []string `yaml:"dependsOn,omitempty"`
}

// ClassResolver returns a resolver over the declared models.
func (f *RouteFile) ClassResolver() *StaticClassResolver {
	r := NewStaticClassResolver()
	for _, m := range f.Models {
		r.Add(m.Model, m.DependsOn...)
	}
	return r
}

// LoadRoutes decodes a route file. Unknown keys are rejected.
func LoadRoutes(data []byte) (*RouteFile, error) {
	return loadRoutes(data, "routes")
}

// LoadRoutesFile reads and decodes the route file at path.
func LoadRoutesFile(path string) (*RouteFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read route file", Cause: err}
	}
	return loadRoutes(data, path)
}

func loadRoutes(data []byte, source string) (*RouteFile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "route file is empty"}
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rf RouteFile
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to decode route file", Cause: err}
	}
	for i, rest := range rf.Rests {
		if rest == nil {
			return nil, &oaserrors.ParseError{Path: source, Message: fmt.Sprintf("rest %d is empty", i)}
		}
		for j, v := range rest.Verbs {
			if v == nil || v.Method == "" {
				return nil, &oaserrors.ParseError{
					Path:    source,
					Message: fmt.Sprintf("verb %d of rest %q has no method", j, rest.Path),
				}
			}
		}
	}
	for i, m := range rf.Models {
		if m.ClassName == "" {
			return nil, &oaserrors.ParseError{Path: source, Message: fmt.Sprintf("model %d has no className", i)}
		}
	}
	return &rf, nil
}
