package parser

import "github.com/erraggy/restoas/parser/internal/jsonhelpers"

// The MarshalJSON methods below flatten Extra into the enclosing object.
// encoding/json has no inline maps, so each type marshals an alias of itself
// (which drops the method and avoids recursion) and merges the extensions.

// MarshalJSON implements json.Marshaler.
func (x *Info) MarshalJSON() ([]byte, error) {
	type alias Info
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Contact) MarshalJSON() ([]byte, error) {
	type alias Contact
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *License) MarshalJSON() ([]byte, error) {
	type alias License
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *ExternalDocs) MarshalJSON() ([]byte, error) {
	type alias ExternalDocs
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Tag) MarshalJSON() ([]byte, error) {
	type alias Tag
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Server) MarshalJSON() ([]byte, error) {
	type alias Server
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *ServerVariable) MarshalJSON() ([]byte, error) {
	type alias ServerVariable
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Schema) MarshalJSON() ([]byte, error) {
	type alias Schema
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Parameter) MarshalJSON() ([]byte, error) {
	type alias Parameter
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Items) MarshalJSON() ([]byte, error) {
	type alias Items
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Header) MarshalJSON() ([]byte, error) {
	type alias Header
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *RequestBody) MarshalJSON() ([]byte, error) {
	type alias RequestBody
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *MediaType) MarshalJSON() ([]byte, error) {
	type alias MediaType
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *PathItem) MarshalJSON() ([]byte, error) {
	type alias PathItem
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Operation) MarshalJSON() ([]byte, error) {
	type alias Operation
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Response) MarshalJSON() ([]byte, error) {
	type alias Response
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *SecurityScheme) MarshalJSON() ([]byte, error) {
	type alias SecurityScheme
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *OAuthFlows) MarshalJSON() ([]byte, error) {
	type alias OAuthFlows
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *OAuthFlow) MarshalJSON() ([]byte, error) {
	type alias OAuthFlow
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *OAS2Document) MarshalJSON() ([]byte, error) {
	type alias OAS2Document
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *OAS3Document) MarshalJSON() ([]byte, error) {
	type alias OAS3Document
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}

// MarshalJSON implements json.Marshaler.
func (x *Components) MarshalJSON() ([]byte, error) {
	type alias Components
	return jsonhelpers.MarshalWithExtras((*alias)(x), x.Extra)
}
