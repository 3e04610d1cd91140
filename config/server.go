package config

import (
	"net"
	"os"
	"strings"
	"time"

	"github.com/erraggy/restoas/oaserrors"
)

const (
	EnvServerAddress         = "RESTOAS_SERVER_ADDRESS"
	EnvServerReadTimeout     = "RESTOAS_SERVER_READ_TIMEOUT"
	EnvServerShutdownTimeout = "RESTOAS_SERVER_SHUTDOWN_TIMEOUT"
	EnvServerRoutesFile      = "RESTOAS_SERVER_ROUTES_FILE"
	EnvServerDocumentPath    = "RESTOAS_SERVER_DOCUMENT_PATH"
)

// ServerConfig holds the document server parameters.
type ServerConfig struct {
	Address         string `toml:"address"`
	ReadTimeout     string `toml:"read_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	// RoutesFile is the route file the served document is generated from.
	RoutesFile string `toml:"routes_file"`
	// DocumentPath is the URL path prefix of /openapi.json and /openapi.yaml.
	DocumentPath string `toml:"document_path"`
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Address != "" {
		c.Address = overlay.Address
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.RoutesFile != "" {
		c.RoutesFile = overlay.RoutesFile
	}
	if overlay.DocumentPath != "" {
		c.DocumentPath = overlay.DocumentPath
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Address == "" {
		c.Address = "127.0.0.1:8080"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "30s"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}
	if c.DocumentPath == "" {
		c.DocumentPath = "/"
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerAddress); v != "" {
		c.Address = v
	}
	if v := os.Getenv(EnvServerReadTimeout); v != "" {
		c.ReadTimeout = v
	}
	if v := os.Getenv(EnvServerShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServerRoutesFile); v != "" {
		c.RoutesFile = v
	}
	if v := os.Getenv(EnvServerDocumentPath); v != "" {
		c.DocumentPath = v
	}
}

func (c *ServerConfig) validate() error {
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return &oaserrors.ConfigError{Option: "server.address", Value: c.Address, Cause: err}
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return &oaserrors.ConfigError{Option: "server.read_timeout", Value: c.ReadTimeout, Cause: err}
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return &oaserrors.ConfigError{Option: "server.shutdown_timeout", Value: c.ShutdownTimeout, Cause: err}
	}
	if !strings.HasPrefix(c.DocumentPath, "/") {
		return &oaserrors.ConfigError{Option: "server.document_path", Value: c.DocumentPath, Message: "must start with /"}
	}
	return nil
}
