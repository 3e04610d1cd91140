// Package config loads the restoas configuration: a TOML base file, an
// optional per-environment overlay and RESTOAS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/erraggy/restoas/oaserrors"
	"github.com/erraggy/restoas/reader"
	"github.com/erraggy/restoas/resolver"
)

const (
	BaseConfigFile       = "restoas.toml"
	OverlayConfigPattern = "restoas.%s.toml"

	EnvRestoasEnv = "RESTOAS_ENV"
)

// Config is the root configuration.
type Config struct {
	Log      LogConfig                   `toml:"log"`
	Server   ServerConfig                `toml:"server"`
	Document reader.Config               `toml:"document"`
	Resolver ResolverConfig              `toml:"resolver"`
	Rest     resolver.RestConfigurations `toml:"rest"`
}

// Env returns the RESTOAS_ENV value, defaulting to "local".
func Env() string {
	if env := os.Getenv(EnvRestoasEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base file at path, applies the overlay for the current
// environment found next to it, and finalizes all values. An empty path
// means restoas.toml in the working directory, which may be absent: then
// defaults and the environment provide everything. An explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	base := path
	if base == "" {
		base = BaseConfigFile
	}
	loaded, err := load(base)
	switch {
	case err == nil:
		cfg = loaded
	case path == "" && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if overlay := overlayPath(filepath.Dir(base)); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a single TOML document and finalizes it. No overlay is
// applied.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &oaserrors.ConfigError{Message: "failed to parse configuration", Cause: err}
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	c.Log.Merge(&overlay.Log)
	c.Server.Merge(&overlay.Server)
	mergeDocument(&c.Document, &overlay.Document)
	c.Resolver.Merge(&overlay.Resolver)
	mergeRest(&c.Rest, &overlay.Rest)
}

// Finalize applies defaults and environment overrides, then validates.
func (c *Config) Finalize() error {
	if err := c.Log.Finalize(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return err
	}
	finalizeDocument(&c.Document)
	if err := c.Resolver.Finalize(); err != nil {
		return err
	}
	return validateRest(&c.Rest)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "file", Value: path, Message: "failed to read configuration", Cause: err}
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &oaserrors.ConfigError{Option: "file", Value: path, Message: "failed to parse configuration", Cause: err}
	}
	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvRestoasEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
