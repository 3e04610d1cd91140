package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restoas/oaserrors"
)

func TestParseOAS2(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-2.0.json")
	require.NoError(t, err)

	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, OASVersion20, result.OASVersion)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)

	doc, ok := result.OAS2Document()
	require.True(t, ok, "expected *OAS2Document, got %T", result.Document)
	assert.Equal(t, "Swagger Petstore", doc.Info.Title)
	assert.Equal(t, "public", doc.Info.Extra["x-audience"])
	assert.Equal(t, "hand written", doc.Extra["x-generator"])
	assert.Equal(t, "petstore.swagger.io", doc.Host)
	assert.Equal(t, "/v2", doc.BasePath)
	assert.Equal(t, []string{"http", "https"}, doc.Schemes)

	// source order is kept
	assert.Equal(t, []string{"/pet/{petId}", "/pet/findByStatus", "/pet"}, doc.Paths.Keys())
	assert.Equal(t, []string{"Pet", "Category"}, doc.Definitions.Keys())

	item, ok := doc.Paths.Get("/pet/{petId}")
	require.True(t, ok)
	require.NotNil(t, item.Get)
	assert.Equal(t, "getPetById", item.Get.OperationID)
	assert.Equal(t, "pets", item.Get.Extra["x-routeId"])
	assert.Equal(t, []string{"200", "404"}, item.Get.Responses.Keys())

	status := ParametersIn(mustOp(t, doc, "/pet/findByStatus", "get"), ParamInQuery)
	require.Len(t, status, 2)
	assert.Equal(t, "array", status[0].Type)
	assert.Equal(t, "multi", status[0].CollectionFormat)
	require.NotNil(t, status[0].Items)
	assert.Equal(t, []any{"available", "pending", "sold"}, status[0].Items.Enum)

	scheme, ok := LookupSecurityScheme(doc, "api_key")
	require.True(t, ok)
	assert.True(t, scheme.IsQueryAPIKey())
}

func TestParseOAS3(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-3.0.yaml")
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, OASVersion30, result.OASVersion)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)

	doc, ok := result.OAS3Document()
	require.True(t, ok)
	assert.Equal(t, []string{"/pet", "/pet/findByTags", "/pet/{petId}"}, doc.Paths.Keys())
	assert.Equal(t, []string{"Pet", "Category"}, doc.GetSchemas().Keys())
	assert.Equal(t, RefPrefixSchemas, doc.SchemaRefPrefix())

	// v3 documents never carry a base path or a spec-derived host
	assert.Empty(t, doc.GetBasePath())
	assert.Empty(t, doc.GetHost())

	op := mustOp(t, doc, "/pet/{petId}", "get")
	assert.Equal(t, true, op.Extra["x-internal"])
	status := ParametersIn(op, ParamInQuery)
	require.Len(t, status, 1)
	assert.Equal(t, "string", status[0].Schema.TypeName())
	assert.Equal(t, "available", status[0].Schema.Default)
}

func TestParseBytes(t *testing.T) {
	t.Run("unquoted yaml version", func(t *testing.T) {
		result, err := ParseBytes([]byte("swagger: 2.0\ninfo:\n  title: t\n  version: '1'\npaths: {}\n"))
		require.NoError(t, err)
		assert.Equal(t, "2.0", result.Version)
		assert.Equal(t, "ParseBytes.yaml", result.SourcePath)
		doc, ok := result.OAS2Document()
		require.True(t, ok)
		assert.Equal(t, "2.0", doc.Swagger)
	})

	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty", input: "  ", message: "document is empty"},
		{name: "no version", input: `{"info": {"title": "t"}}`, message: "unable to detect OpenAPI version"},
		{name: "unsupported version", input: `{"openapi": "4.0.0"}`, message: "unsupported OpenAPI version"},
		{name: "not a document", input: "[1, 2", message: "failed to decode document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseDuplicatePath(t *testing.T) {
	_, err := ParseBytes([]byte("swagger: '2.0'\ninfo: {title: t, version: '1'}\npaths:\n  /a: {}\n  /a: {}\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestFindOperation(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-2.0.json")
	require.NoError(t, err)

	ref, ok := FindOperation(result.Document, "deletePet")
	require.True(t, ok)
	assert.Equal(t, "/pet/{petId}", ref.Path)
	assert.Equal(t, "delete", ref.Method)

	_, ok = FindOperation(result.Document, "nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"getPetById", "deletePet", "findPetsByStatus", "addPet"}, OperationIDs(result.Document))
}

func TestOperationMediaTypes(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-3.0.yaml")
	require.NoError(t, err)
	doc := result.Document

	put := mustOp(t, doc, "/pet", "put")
	assert.Equal(t, []string{"application/json", "application/xml"}, doc.OperationConsumes(put))
	assert.Equal(t, []string{"application/json", "application/xml"}, doc.OperationProduces(put))

	find := mustOp(t, doc, "/pet/findByTags", "get")
	assert.Nil(t, doc.OperationConsumes(find))
	assert.Equal(t, []string{"application/json", "text/plain"}, doc.OperationProduces(find))

	v2, err := New().Parse("../testdata/petstore-2.0.json")
	require.NoError(t, err)
	get := mustOp(t, v2.Document, "/pet/{petId}", "get")
	assert.Equal(t, []string{"application/xml", "application/json"}, v2.Document.OperationProduces(get))
	assert.Nil(t, v2.Document.OperationConsumes(get))
}

func TestOperationProducesOrder(t *testing.T) {
	result, err := ParseBytes([]byte(`openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /a:
    get:
      operationId: a
      responses:
        "200":
          description: ok
          content:
            text/plain: {}
            application/xml: {}
        "404":
          description: missing
          content:
            application/problem+json: {}
            application/json: {}
            text/plain: {}
`))
	require.NoError(t, err)
	op := mustOp(t, result.Document, "/a", "get")
	assert.Equal(t,
		[]string{"application/xml", "text/plain", "application/json", "application/problem+json"},
		result.Document.OperationProduces(op))
}

func TestClearExtensions(t *testing.T) {
	result, err := New().Parse("../testdata/petstore-2.0.json")
	require.NoError(t, err)
	doc := result.Document
	doc.ClearExtensions()

	out, err := MarshalJSON(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "x-generator")
	assert.NotContains(t, string(out), "x-routeId")
	assert.NotContains(t, string(out), "x-className")
	// info extensions are outside the cleared set
	assert.Contains(t, string(out), "x-audience")
}

func TestMarshal(t *testing.T) {
	doc := NewOAS2Document()
	doc.Info.Title = "t"
	doc.Info.Version = "1"
	op := &Operation{OperationID: "hi", Responses: NewOrderedMap[*Response]()}
	op.SetExtension("x-routeId", "route1")
	op.Responses.Set("200", &Response{Examples: map[string]any{"application/xml": "<hello>Hi</hello>"}})
	doc.PathItem("/z").Get = op
	doc.PathItem("/a").Post = &Operation{OperationID: "bye", Responses: NewOrderedMap[*Response]()}

	data, err := MarshalJSON(doc)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"x-routeId": "route1"`)
	assert.Contains(t, out, `"application/xml": "<hello>Hi</hello>"`)
	assert.Contains(t, out, `"description": ""`)
	assert.Less(t, strings.Index(out, `"/z"`), strings.Index(out, `"/a"`))

	y, err := MarshalYAML(doc)
	require.NoError(t, err)
	assert.Regexp(t, `swagger: ["']2\.0["']`, string(y))
	assert.Contains(t, string(y), "x-routeId: route1")
	assert.Less(t, strings.Index(string(y), "/z:"), strings.Index(string(y), "/a:"))

	// the output parses back to the same shape
	back, err := ParseBytes(y)
	require.NoError(t, err)
	assert.Equal(t, []string{"/z", "/a"}, back.Document.GetPaths().Keys())
}

func mustOp(t *testing.T, doc DocumentAccessor, path, method string) *Operation {
	t.Helper()
	item, ok := doc.GetPaths().Get(path)
	require.True(t, ok, "path %s not found", path)
	op := item.GetOperation(method)
	require.NotNil(t, op, "no %s operation on %s", method, path)
	return op
}
