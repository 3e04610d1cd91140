package config

import (
	"os"
	"strings"

	"github.com/erraggy/restoas/reader"
)

const (
	EnvDocumentHost     = "RESTOAS_DOCUMENT_HOST"
	EnvDocumentBasePath = "RESTOAS_DOCUMENT_BASE_PATH"
	EnvDocumentSchemes  = "RESTOAS_DOCUMENT_SCHEMES"
	EnvDocumentTitle    = "RESTOAS_DOCUMENT_TITLE"
	EnvDocumentVersion  = "RESTOAS_DOCUMENT_VERSION"
)

func mergeDocument(c, overlay *reader.Config) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if len(overlay.Schemes) > 0 {
		c.Schemes = overlay.Schemes
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.TermsOfService != "" {
		c.TermsOfService = overlay.TermsOfService
	}
	if overlay.Contact != nil {
		c.Contact = overlay.Contact
	}
	if overlay.License != nil {
		c.License = overlay.License
	}
	if overlay.ContextID != "" {
		c.ContextID = overlay.ContextID
	}
	if overlay.ClearVendorExtensions {
		c.ClearVendorExtensions = true
	}
}

// finalizeDocument applies environment overrides. RESTOAS_DOCUMENT_SCHEMES
// is a comma-separated list.
func finalizeDocument(c *reader.Config) {
	if v := os.Getenv(EnvDocumentHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvDocumentBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvDocumentSchemes); v != "" {
		var schemes []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				schemes = append(schemes, s)
			}
		}
		c.Schemes = schemes
	}
	if v := os.Getenv(EnvDocumentTitle); v != "" {
		c.Title = v
	}
	if v := os.Getenv(EnvDocumentVersion); v != "" {
		c.Version = v
	}
}
