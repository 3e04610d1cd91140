package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restoas/reader"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server, err := newServer(Options{Document: reader.Config{Title: "Greetings", Version: "1"}})
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// The server blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %s has no input schema", tool.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{"emit_operations", "read_routes", "resolve_endpoint"}, names)
}

func TestIntegration_CallTool_ReadRoutes(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "read_routes",
		Arguments: map[string]any{
			"file":  "../../testdata/routes.yaml",
			"check": true,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, float64(3), out["path_count"])
	assert.Equal(t, true, out["valid"])
	assert.Contains(t, out["document"], "Greetings")
}

func TestIntegration_CallTool_ResolveEndpoint(t *testing.T) {
	specCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "resolve_endpoint",
		Arguments: map[string]any{
			"spec":         map[string]any{"file": "../../testdata/petstore-2.0.json"},
			"operation_id": "deletePet",
			"parameters":   map[string]any{"petId": "7"},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, "https://petstore.swagger.io/v2/pet/7", out["url"])
	endpoint, ok := out["endpoint"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DELETE", endpoint["method"])
}

func TestIntegration_CallTool_EmitOperations(t *testing.T) {
	specCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "emit_operations",
		Arguments: map[string]any{
			"spec":   map[string]any{"file": "../../testdata/petstore-3.0.yaml"},
			"filter": "getPetById",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := unmarshalStructured(t, result)
	assert.Equal(t, float64(1), out["total"])
	ops, ok := out["operations"].([]any)
	require.True(t, ok)
	require.Len(t, ops, 1)
	op := ops[0].(map[string]any)
	assert.Equal(t, "direct:getPetById", op["to"])
}

func TestIntegration_CallTool_Error_MissingSpec(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "emit_operations",
		Arguments: map[string]any{
			"spec": map[string]any{},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.Contains(t, text.Text, "exactly one of file, url, or content")
}

// unmarshalStructured extracts the structured output from a CallToolResult.
// It first checks StructuredContent, then falls back to parsing the first TextContent.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
