package reader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restoas/oaserrors"
)

func TestLoadRoutesFile(t *testing.T) {
	rf, err := LoadRoutesFile("../testdata/routes.yaml")
	require.NoError(t, err)

	require.Len(t, rf.Rests, 1)
	rest := rf.Rests[0]
	assert.Equal(t, "/hello", rest.Path)
	require.Len(t, rest.Verbs, 3)
	require.Len(t, rest.SecurityDefinitions, 2)
	assert.Equal(t, SecurityOAuth2, rest.SecurityDefinitions[1].Kind)

	hi := rest.Verbs[0]
	assert.Equal(t, "hi", hi.RouteID)
	assert.Equal(t, []Property{{Key: "", Value: "Donald Duck"}}, hi.Params[0].Examples)

	bye := rest.Verbs[1]
	require.Len(t, bye.ResponseMsgs, 1)
	assert.Equal(t, "200", bye.ResponseMsgs[0].Code)
	assert.Equal(t, "long", bye.ResponseMsgs[0].Headers[0].DataType)

	require.Len(t, rf.Models, 2)
	assert.Equal(t, []string{"com.example.greeting.Author"}, rf.Models[0].DependsOn)

	resolver := rf.ClassResolver()
	models, err := resolver.ResolveClass("com.example.greeting.Greeting")
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "#/definitions/Author", models[0].Schema.Properties["author"].Ref)

	assert.Equal(t, []string{"com.example.greeting.Greeting"}, Types(rf.Rests))
}

func TestLoadRoutesErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty", input: "\n", message: "route file is empty"},
		{name: "unknown key", input: "rests: []\nextra: 1\n", message: "failed to decode route file"},
		{name: "no method", input: "rests:\n  - path: /a\n    verbs:\n      - uri: /b\n", message: "has no method"},
		{name: "no class name", input: "rests: []\nmodels:\n  - schema: {type: object}\n", message: "has no className"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRoutes([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse))
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	_, err := LoadRoutesFile("testdata/missing.yaml")
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}
