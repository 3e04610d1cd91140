package reader

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/erraggy/restoas/parser"
)

// ErrClassNotFound is returned by class resolvers for unknown type names.
var ErrClassNotFound = errors.New("class not found")

// Model is a named schema contributed by a class.
type Model struct {
	// ClassName is the qualified name, e.g. "com.acme.Pet".
	ClassName string         `yaml:"className"`
	Schema    *parser.Schema `yaml:"schema,omitempty"`
}

// ClassResolver looks up the models of a qualified type name. The first
// model returned describes the class itself and the rest are models it
// depends on. A class that exists but contributes no model returns an
// empty slice. Implementations must be safe for concurrent use.
type ClassResolver interface {
	ResolveClass(className string) ([]Model, error)
}

// ClassResolverFunc adapts a function to ClassResolver.
type ClassResolverFunc func(className string) ([]Model, error)

// ResolveClass implements ClassResolver.
func (f ClassResolverFunc) ResolveClass(className string) ([]Model, error) {
	return f(className)
}

// StaticClassResolver resolves classes from a fixed set of declared models.
type StaticClassResolver struct {
	mu     sync.RWMutex
	models map[string]Model
	// depends maps a class to the classes its model refers to
	depends map[string][]string
}

// NewStaticClassResolver returns a resolver over models.
func NewStaticClassResolver(models ...Model) *StaticClassResolver {
	r := &StaticClassResolver{
		models:  make(map[string]Model, len(models)),
		depends: make(map[string][]string),
	}
	for _, m := range models {
		r.Add(m)
	}
	return r
}

// Add declares a model, replacing an earlier one with the same class name.
func (r *StaticClassResolver) Add(m Model, dependsOn ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.ClassName] = m
	if len(dependsOn) > 0 {
		r.depends[m.ClassName] = slices.Clone(dependsOn)
	}
}

// ClassNames returns the declared class names, sorted.
func (r *StaticClassResolver) ClassNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.models))
}

// ResolveClass implements ClassResolver.
func (r *StaticClassResolver) ResolveClass(className string) ([]Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[className]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, className)
	}
	out := []Model{cloneModel(m)}
	seen := map[string]bool{className: true}
	queue := slices.Clone(r.depends[className])
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		dep, ok := r.models[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s (required by %s)", ErrClassNotFound, name, className)
		}
		out = append(out, cloneModel(dep))
		queue = append(queue, r.depends[name]...)
	}
	return out, nil
}

// cloneModel copies the top level of the schema so registration, which
// tags the schema with x-className, never mutates the declared model.
func cloneModel(m Model) Model {
	if m.Schema == nil {
		return m
	}
	s := *m.Schema
	s.Extra = maps.Clone(m.Schema.Extra)
	m.Schema = &s
	return m
}

// ChainClassResolver tries each resolver in turn and returns the first
// result that is not ErrClassNotFound.
type ChainClassResolver []ClassResolver

// ResolveClass implements ClassResolver.
func (c ChainClassResolver) ResolveClass(className string) ([]Model, error) {
	for _, r := range c {
		models, err := r.ResolveClass(className)
		if err == nil {
			return models, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClassNotFound, className)
}
