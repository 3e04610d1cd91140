package parser

import "strings"

// OASVersion represents a supported major.minor series of the OpenAPI
// Specification.
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion30 OpenAPI Specification Version 3.0.x
	OASVersion30
	// OASVersion31 OpenAPI Specification Version 3.1.x
	OASVersion31
)

func (v OASVersion) String() string {
	switch v {
	case OASVersion20:
		return "2.0"
	case OASVersion30:
		return "3.0"
	case OASVersion31:
		return "3.1"
	}
	return "unknown"
}

// IsValid returns true if this is a known version
func (v OASVersion) IsValid() bool {
	return v != Unknown
}

// IsOAS3 returns true for every 3.x series.
func (v OASVersion) IsOAS3() bool {
	return v == OASVersion30 || v == OASVersion31
}

// ParseVersion maps a document's `swagger` or `openapi` value onto a
// supported series. Patch releases are accepted without being enumerated.
func ParseVersion(s string) (OASVersion, bool) {
	switch {
	case s == "2.0":
		return OASVersion20, true
	case s == "3.0" || strings.HasPrefix(s, "3.0."):
		return OASVersion30, true
	case s == "3.1" || strings.HasPrefix(s, "3.1."):
		return OASVersion31, true
	}
	return Unknown, false
}
