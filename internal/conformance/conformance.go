// Package conformance checks generated OAS 2.0 documents with an independent
// implementation of the specification, so a document that this module can
// round-trip but other tooling rejects is caught early.
package conformance

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/restoas/oaserrors"
	"github.com/erraggy/restoas/parser"
)

// CheckOAS2 validates a serialized OAS 2.0 document, JSON or YAML. The
// document is converted to OAS 3.0 and validated there; schema formats and
// examples are not checked. Every failure is an *oaserrors.ValidationError.
func CheckOAS2(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := asJSON(data)
	if err != nil {
		return err
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return &oaserrors.ValidationError{Message: "failed to decode document", Cause: err}
	}
	if doc2.Swagger != "2.0" {
		return &oaserrors.ValidationError{Path: "swagger", Message: "expected version 2.0, got " + doc2.Swagger}
	}

	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return &oaserrors.ValidationError{Message: "failed to convert document", Cause: err}
	}
	if doc3.Paths == nil {
		doc3.Paths = openapi3.NewPaths()
	}
	err = doc3.Validate(ctx,
		openapi3.DisableSchemaFormatValidation(),
		openapi3.DisableExamplesValidation(),
	)
	if err != nil {
		return &oaserrors.ValidationError{Message: "document does not conform to OpenAPI", Cause: err}
	}
	return nil
}

// CheckDocument serializes doc and runs CheckOAS2 on it.
func CheckDocument(ctx context.Context, doc *parser.OAS2Document) error {
	data, err := parser.MarshalJSON(doc)
	if err != nil {
		return &oaserrors.ValidationError{Message: "failed to serialize document", Cause: err}
	}
	return CheckOAS2(ctx, data)
}

// asJSON re-encodes YAML input as JSON.
func asJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return trimmed, nil
	}
	res, err := parser.ParseBytes(data)
	if err != nil {
		return nil, &oaserrors.ValidationError{Message: "failed to decode document", Cause: err}
	}
	out, err := parser.MarshalJSON(res.Document)
	if err != nil {
		return nil, &oaserrors.ValidationError{Message: "failed to re-encode document", Cause: err}
	}
	return out, nil
}
