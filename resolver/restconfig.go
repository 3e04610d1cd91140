package resolver

import (
	"strconv"
	"strings"

	"github.com/erraggy/restoas/internal/httputil"
)

// RestConfiguration is an externally supplied REST configuration: where
// requests go and under which context path the API lives.
type RestConfiguration struct {
	Scheme      string `toml:"scheme" yaml:"scheme,omitempty" json:"scheme,omitempty"`
	Host        string `toml:"host" yaml:"host,omitempty" json:"host,omitempty"`
	Port        int    `toml:"port" yaml:"port,omitempty" json:"port,omitempty"`
	ContextPath string `toml:"context_path" yaml:"contextPath,omitempty" json:"contextPath,omitempty"`
}

// RestConfigurations is a snapshot of the global REST configuration and the
// configurations registered per component name.
type RestConfigurations struct {
	Global     *RestConfiguration            `toml:"global"`
	Components map[string]*RestConfiguration `toml:"components"`
}

// Component returns the configuration registered for name, or nil.
func (c RestConfigurations) Component(name string) *RestConfiguration {
	if name == "" {
		return nil
	}
	return c.Components[name]
}

// HostFrom renders scheme://host[:port] from a configuration. It returns ""
// when the configuration is nil or lacks a scheme or host. The port is
// omitted when it is unset or the default of the scheme.
func HostFrom(rc *RestConfiguration) string {
	if rc == nil || rc.Scheme == "" || rc.Host == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(rc.Scheme)
	b.WriteString("://")
	b.WriteString(rc.Host)
	if rc.Port > 0 && !httputil.IsDefaultPort(rc.Scheme, rc.Port) {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(rc.Port))
	}
	return b.String()
}

// contextPath returns the configured context path with a leading slash, or
// "" when none is set.
func contextPath(rc *RestConfiguration) string {
	if rc == nil || strings.TrimSpace(rc.ContextPath) == "" {
		return ""
	}
	p := strings.TrimSpace(rc.ContextPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
