package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/reader"
)

const inlineRoutes = `rests:
  - path: /users
    verbs:
      - method: get
        uri: /{id}
        routeId: getUser
        params:
          - name: id
            type: path
            dataType: integer
      - method: delete
        uri: /{id}
        routeId: deleteUser
        params:
          - name: id
            type: path
            dataType: integer
  - path: /orders
    verbs:
      - method: get
        routeId: listOrders
`

func newTestToolset(t *testing.T, document reader.Config) *toolset {
	t.Helper()
	tools, err := newToolset(Options{Document: document})
	require.NoError(t, err)
	return tools
}

func TestReadRoutesTool_File(t *testing.T) {
	tools := newTestToolset(t, reader.Config{Title: "Greetings", Version: "1"})
	_, output, err := tools.handleReadRoutes(context.Background(), &mcp.CallToolRequest{}, readRoutesInput{
		File:  "../../testdata/routes.yaml",
		Check: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, output.PathCount)
	assert.Equal(t, 3, output.OperationCount)
	assert.Equal(t, 2, output.DefinitionCount)
	require.NotNil(t, output.Valid)
	assert.True(t, *output.Valid, output.Problem)

	res, err := parser.ParseBytes([]byte(output.Document))
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatJSON, res.SourceFormat)
	assert.Equal(t, "Greetings", res.Document.GetInfo().Title)
}

func TestReadRoutesTool_ContentOverridesAndFilter(t *testing.T) {
	tools := newTestToolset(t, reader.Config{Title: "Default", Version: "1", Host: "default:80"})
	_, output, err := tools.handleReadRoutes(context.Background(), &mcp.CallToolRequest{}, readRoutesInput{
		Content:     inlineRoutes,
		RouteFilter: "/users",
		Format:      "yaml",
		Title:       "Users",
		BasePath:    "/api",
		Schemes:     []string{"https"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, output.PathCount)
	assert.Equal(t, 2, output.OperationCount)
	assert.Nil(t, output.Valid)

	res, err := parser.ParseBytes([]byte(output.Document))
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatYAML, res.SourceFormat)
	doc, ok := res.OAS2Document()
	require.True(t, ok)
	assert.Equal(t, "Users", doc.Info.Title)
	assert.Equal(t, "1", doc.Info.Version)
	assert.Equal(t, "default:80", doc.Host)
	assert.Equal(t, "/api", doc.BasePath)
	assert.Equal(t, []string{"https"}, doc.Schemes)
	assert.Equal(t, []string{"/users/{id}"}, doc.Paths.Keys())

	// the server defaults are not modified by a call
	assert.Equal(t, "Default", tools.document.Title)
}

func TestReadRoutesTool_CheckReportsProblem(t *testing.T) {
	// no title or version: not a valid Swagger 2.0 document
	tools := newTestToolset(t, reader.Config{})
	result, output, err := tools.handleReadRoutes(context.Background(), &mcp.CallToolRequest{}, readRoutesInput{
		Content: inlineRoutes,
		Check:   true,
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, output.Valid)
	assert.False(t, *output.Valid)
	assert.NotEmpty(t, output.Problem)
	assert.NotEmpty(t, output.Document)
}

func TestReadRoutesTool_Errors(t *testing.T) {
	tools := newTestToolset(t, reader.Config{})
	tests := []struct {
		name  string
		input readRoutesInput
		want  string
	}{
		{"no input", readRoutesInput{}, "exactly one of file or content must be provided (got 0)"},
		{"both inputs", readRoutesInput{File: "a.yaml", Content: "rests: []"}, "(got 2)"},
		{"bad format", readRoutesInput{Content: inlineRoutes, Format: "xml"}, `invalid format "xml"`},
		{"unknown key", readRoutesInput{Content: "rests: []\nbogus: 1\n"}, "bogus"},
		{"missing file", readRoutesInput{File: "/tmp/restoas-missing/routes.yaml"}, "failed to read route file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := tools.handleReadRoutes(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.want)
		})
	}
}
