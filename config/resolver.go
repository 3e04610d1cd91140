package config

import (
	"os"
	"path/filepath"

	"github.com/erraggy/restoas/internal/resource"
	"github.com/erraggy/restoas/oaserrors"
	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/resolver"
)

const (
	EnvResolverHost             = "RESTOAS_RESOLVER_HOST"
	EnvResolverBasePath         = "RESTOAS_RESOLVER_BASE_PATH"
	EnvResolverComponentName    = "RESTOAS_RESOLVER_COMPONENT_NAME"
	EnvResolverSpecificationURI = "RESTOAS_RESOLVER_SPECIFICATION_URI"
	EnvResolverClassPath        = "RESTOAS_RESOLVER_CLASS_PATH"
)

// ResolverConfig holds the component-level endpoint overrides and the
// directories searched for classpath: specification URIs.
type ResolverConfig struct {
	resolver.Overrides
	ClassPath []string `toml:"class_path"`
}

// Finalize applies environment variable overrides and validation.
// RESTOAS_RESOLVER_CLASS_PATH is an os.PathListSeparator separated list.
func (c *ResolverConfig) Finalize() error {
	c.loadEnv()
	if err := c.Overrides.Validate(); err != nil {
		return &oaserrors.ConfigError{Option: "resolver", Cause: err}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ResolverConfig) Merge(overlay *ResolverConfig) {
	o := &overlay.Overrides
	if o.BasePath != "" {
		c.BasePath = o.BasePath
	}
	if o.Host != "" {
		c.Host = o.Host
	}
	if o.ComponentName != "" {
		c.ComponentName = o.ComponentName
	}
	if o.Consumes != "" {
		c.Consumes = o.Consumes
	}
	if o.Produces != "" {
		c.Produces = o.Produces
	}
	if o.SpecificationURI != "" {
		c.SpecificationURI = o.SpecificationURI
	}
	if o.UseGlobalSSLContextParameters {
		c.UseGlobalSSLContextParameters = true
	}
	if len(overlay.ClassPath) > 0 {
		c.ClassPath = overlay.ClassPath
	}
}

// NewResolver builds a resolver from the resolver and rest sections.
// Specifications are loaded with the configured class path.
func (c *Config) NewResolver(logger parser.Logger) (*resolver.Resolver, error) {
	loader := resource.New(
		resource.WithClassPath(c.Resolver.ClassPath...),
		resource.WithLogger(logger),
	)
	return resolver.New(
		resolver.WithLoader(loader),
		resolver.WithComponent(c.Resolver.Overrides),
		resolver.WithRestConfigurations(c.Rest),
		resolver.WithLogger(logger),
	)
}

func (c *ResolverConfig) loadEnv() {
	if v := os.Getenv(EnvResolverHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvResolverBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvResolverComponentName); v != "" {
		c.ComponentName = v
	}
	if v := os.Getenv(EnvResolverSpecificationURI); v != "" {
		c.SpecificationURI = v
	}
	if v := os.Getenv(EnvResolverClassPath); v != "" {
		c.ClassPath = filepath.SplitList(v)
	}
}

// mergeRest overlays the global configuration field by field and each named
// component configuration likewise.
func mergeRest(c, overlay *resolver.RestConfigurations) {
	if overlay.Global != nil {
		if c.Global == nil {
			c.Global = &resolver.RestConfiguration{}
		}
		mergeRestConfiguration(c.Global, overlay.Global)
	}
	for name, rc := range overlay.Components {
		if rc == nil {
			continue
		}
		if c.Components == nil {
			c.Components = make(map[string]*resolver.RestConfiguration)
		}
		if c.Components[name] == nil {
			c.Components[name] = &resolver.RestConfiguration{}
		}
		mergeRestConfiguration(c.Components[name], rc)
	}
}

func mergeRestConfiguration(c, overlay *resolver.RestConfiguration) {
	if overlay.Scheme != "" {
		c.Scheme = overlay.Scheme
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.ContextPath != "" {
		c.ContextPath = overlay.ContextPath
	}
}

func validateRest(c *resolver.RestConfigurations) error {
	check := func(option string, rc *resolver.RestConfiguration) error {
		if rc == nil {
			return nil
		}
		if rc.Port < 0 || rc.Port > 65535 {
			return &oaserrors.ConfigError{Option: option + ".port", Value: rc.Port, Message: "must be between 0 and 65535"}
		}
		switch rc.Scheme {
		case "", "http", "https":
		default:
			return &oaserrors.ConfigError{Option: option + ".scheme", Value: rc.Scheme, Message: "must be http or https"}
		}
		return nil
	}
	if err := check("rest.global", c.Global); err != nil {
		return err
	}
	for name, rc := range c.Components {
		if err := check("rest.components."+name, rc); err != nil {
			return err
		}
	}
	return nil
}
