package reader

import (
	"github.com/erraggy/restoas/parser"
)

// Contact identifies the owner of the documented API.
type Contact struct {
	Name  string `toml:"name" yaml:"name,omitempty"`
	URL   string `toml:"url" yaml:"url,omitempty"`
	Email string `toml:"email" yaml:"email,omitempty"`
}

// License names the license of the documented API.
type License struct {
	Name string `toml:"name" yaml:"name,omitempty"`
	URL  string `toml:"url" yaml:"url,omitempty"`
}

// Config holds the document-level settings applied once every route has
// been read.
type Config struct {
	Host           string   `toml:"host" yaml:"host,omitempty"`
	Schemes        []string `toml:"schemes" yaml:"schemes,omitempty"`
	BasePath       string   `toml:"base_path" yaml:"basePath,omitempty"`
	Title          string   `toml:"title" yaml:"title,omitempty"`
	Version        string   `toml:"version" yaml:"version,omitempty"`
	Description    string   `toml:"description" yaml:"description,omitempty"`
	TermsOfService string   `toml:"terms_of_service" yaml:"termsOfService,omitempty"`
	Contact        *Contact `toml:"contact" yaml:"contact,omitempty"`
	License        *License `toml:"license" yaml:"license,omitempty"`

	// ContextID is written as x-camelContextId on every operation.
	ContextID string `toml:"camel_context_id" yaml:"contextId,omitempty"`

	// ClearVendorExtensions strips x- extensions from the document, its
	// definitions, path items and operations.
	ClearVendorExtensions bool `toml:"clear_vendor_extensions" yaml:"clearVendorExtensions,omitempty"`
}

// apply writes the configuration into doc.
func (c Config) apply(doc *parser.OAS2Document) {
	doc.Swagger = "2.0"
	if doc.Info == nil {
		doc.Info = &parser.Info{}
	}
	doc.Info.Title = c.Title
	doc.Info.Version = c.Version
	doc.Info.Description = c.Description
	doc.Info.TermsOfService = c.TermsOfService
	if c.Contact != nil {
		doc.Info.Contact = &parser.Contact{Name: c.Contact.Name, URL: c.Contact.URL, Email: c.Contact.Email}
	}
	if c.License != nil && c.License.Name != "" {
		doc.Info.License = &parser.License{Name: c.License.Name, URL: c.License.URL}
	}
	doc.Host = c.Host
	doc.BasePath = c.BasePath
	if len(c.Schemes) > 0 {
		doc.Schemes = append([]string(nil), c.Schemes...)
	}
	if c.ClearVendorExtensions {
		doc.ClearExtensions()
	}
}
