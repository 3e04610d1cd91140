package reader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restoas/oaserrors"
	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/typemap"
)

// helloRests mirrors the greeting routes: a path parameter with a plain
// example and a body parameter with a keyed one.
func helloRests() []*Rest {
	return []*Rest{{
		Path:     "/hello",
		Consumes: "application/json",
		Produces: "application/json",
		Verbs: []*Verb{
			{
				Method:      "get",
				URI:         "/hi/{name}",
				Description: "Saying hi",
				Params: []*Param{{
					Name:        "name",
					Type:        ParamPath,
					DataType:    "string",
					Description: "Who is it",
					Examples:    []Property{{Key: "", Value: "Donald Duck"}},
				}},
			},
			{
				Method:      "post",
				URI:         "/bye",
				Description: "To update the greeting message",
				Consumes:    "application/xml",
				Produces:    "application/xml",
				Params: []*Param{{
					Name:        "greeting",
					Type:        ParamBody,
					DataType:    "string",
					Description: "Message to use as greeting",
					Examples: []Property{
						{Key: "application/xml", Value: "<hello>Hi</hello>"},
						{Key: "application/json", Value: `{"hello":"Hi"}`},
					},
				}},
			},
		},
	}}
}

func TestReadHello(t *testing.T) {
	doc, err := Read(helloRests(), "", Config{
		Host:     "localhost:8080",
		Schemes:  []string{"http"},
		BasePath: "/api",
		Title:    "Hello",
		Version:  "2.0",
	})
	require.NoError(t, err)

	data, err := parser.MarshalJSON(doc)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `"/hello/hi/{name}"`)
	assert.Contains(t, out, `"/hello/bye"`)
	assert.Contains(t, out, `"x-example": "Donald Duck"`)
	assert.Contains(t, out, `"application/xml": "<hello>Hi</hello>"`)
	assert.Contains(t, out, `"host": "localhost:8080"`)
	assert.Contains(t, out, `"basePath": "/api"`)
	assert.Contains(t, out, `"summary": "To update the greeting message"`)
	// only the first example of a parameter is kept
	assert.NotContains(t, out, `{"hello":"Hi"}`)

	post := doc.Paths.Keys()
	assert.Equal(t, []string{"/hello/bye", "/hello/hi/{name}"}, post)

	item, _ := doc.Paths.Get("/hello/bye")
	require.NotNil(t, item.Post)
	assert.Equal(t, []string{"application/xml"}, item.Post.Consumes)
	assert.Equal(t, []string{"hello"}, item.Post.Tags)
	body := item.Post.Parameters[0]
	assert.Equal(t, "body", body.In)
	assert.Equal(t, "string", body.Schema.Type)
	assert.True(t, body.Required)

	// no response messages: a bare 200 is synthesized
	assert.Equal(t, []string{"200"}, item.Post.Responses.Keys())

	hi, _ := doc.Paths.Get("/hello/hi/{name}")
	require.NotNil(t, hi.Get)
	assert.Equal(t, []string{"application/json"}, hi.Get.Produces)

	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "hello", doc.Tags[0].Name)
}

func TestVerbOrdering(t *testing.T) {
	rests := []*Rest{{
		Path: "/api",
		Verbs: []*Verb{
			{Method: "put", URI: "/users"},
			{Method: "get", URI: "/users/{id}"},
			{Method: "get", URI: "/users"},
			{Method: "delete", URI: "/{id}"},
			{Method: "get", URI: "/about"},
		},
	}}
	doc, err := Read(rests, "", Config{})
	require.NoError(t, err)

	// "{" sorts as "_", before lower case letters
	assert.Equal(t, []string{"/api/{id}", "/api/about", "/api/users", "/api/users/{id}"}, doc.Paths.Keys())

	ids := parser.OperationIDs(doc)
	assert.Equal(t, []string{"route1", "route2", "route3", "route4", "route5"}, ids)

	users, _ := doc.Paths.Get("/api/users")
	assert.Equal(t, "route3", users.Get.OperationID)
	assert.Equal(t, "route4", users.Put.OperationID)
}

func TestRouteFilter(t *testing.T) {
	rests := []*Rest{
		{Path: "/a", Verbs: []*Verb{{Method: "get"}}},
		{Path: "/b", Verbs: []*Verb{{Method: "get"}}},
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "", want: []string{"/a", "/b"}},
		{filter: "/", want: []string{"/a", "/b"}},
		{filter: "/b", want: []string{"/b"}},
		{filter: "/c", want: []string{}},
	}
	for _, tt := range tests {
		t.Run("filter "+tt.filter, func(t *testing.T) {
			doc, err := Read(rests, tt.filter, Config{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Paths.Keys())
		})
	}
}

func TestOperationIDsUnique(t *testing.T) {
	rests := []*Rest{
		{
			Path: "/pets",
			ID:   "pets",
			Verbs: []*Verb{
				{Method: "get", RouteID: "listPets"},
				{Method: "post", RouteID: "addPet"},
				{Method: "get", URI: "/{id}", RouteID: "getPet"},
			},
		},
		{
			Path:  "/stores",
			Verbs: []*Verb{{Method: "get", RouteID: "pets"}},
		},
	}
	doc, err := Read(rests, "", Config{})
	require.NoError(t, err)

	ids := parser.OperationIDs(doc)
	assert.ElementsMatch(t, []string{"pets", "pets_2", "pets_3", "pets_4"}, ids)

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate operationId %s", id)
		seen[id] = true
	}

	// the route id stays on the extension
	pets, _ := doc.Paths.Get("/pets")
	assert.Equal(t, "listPets", pets.Get.Extra[ExtRouteID])
}

func TestSecurityDefinitions(t *testing.T) {
	rests := []*Rest{{
		Path: "/secure",
		SecurityDefinitions: []*SecurityDefinition{
			{Kind: SecurityBasic, Key: "myBasic", Description: "basic"},
			{Kind: SecurityAPIKey, Key: "queryKey", Name: "api_key"},
			{Kind: SecurityAPIKey, Key: "headerKey", Name: "X-API-Key", InHeader: true},
			{Kind: SecurityOAuth2, Key: "code", AuthorizationURL: "https://a", TokenURL: "https://t"},
			{Kind: SecurityOAuth2, Key: "implicit", AuthorizationURL: "https://a",
				Scopes: []Property{{Key: "read", Value: "read things"}}},
			{Kind: SecurityOAuth2, Key: "explicit", Flow: "password", TokenURL: "https://t"},
		},
		Verbs: []*Verb{{
			Method:   "get",
			Security: []*SecurityRef{{Key: "implicit", Scopes: "read,  write\tadmin"}, {Key: "queryKey"}},
		}},
	}}
	doc, err := Read(rests, "", Config{})
	require.NoError(t, err)

	defs := doc.SecurityDefinitions
	require.Contains(t, defs, BasicAuthKey)
	assert.NotContains(t, defs, "myBasic")
	assert.Equal(t, BasicAuthType, defs[BasicAuthKey].Type)

	assert.Equal(t, "query", defs["queryKey"].In)
	assert.Equal(t, "api_key", defs["queryKey"].Name)
	assert.Equal(t, "header", defs["headerKey"].In)

	assert.Equal(t, parser.FlowAccessCode, defs["code"].Flow)
	assert.Equal(t, parser.FlowImplicit, defs["implicit"].Flow)
	assert.Equal(t, map[string]string{"read": "read things"}, defs["implicit"].Scopes)
	assert.Equal(t, parser.FlowPassword, defs["explicit"].Flow)

	item, _ := doc.Paths.Get("/secure")
	require.Len(t, item.Get.Security, 2)
	assert.Equal(t, []string{"read", "write", "admin"}, item.Get.Security[0]["implicit"])
	assert.Equal(t, []string{}, item.Get.Security[1]["queryKey"])
}

func TestParameters(t *testing.T) {
	rests := []*Rest{{
		Path: "/search",
		Verbs: []*Verb{{
			Method: "get",
			Params: []*Param{
				{
					Name:             "sizes",
					Type:             ParamQuery,
					Required:         Bool(false),
					DataType:         "array",
					ArrayType:        "int",
					CollectionFormat: "multi",
					AllowableValues:  []string{"1", "2", "3"},
				},
				{
					Name:            "sort",
					Type:            ParamQuery,
					Required:        Bool(false),
					AllowableValues: []string{"asc", "desc"},
					DefaultValue:    "asc",
					Examples:        []Property{{Key: "ascending", Value: "asc"}},
				},
				{
					Name:       "X-Limit",
					Type:       ParamHeader,
					DataType:   "integer",
					DataFormat: "int32",
				},
			},
		}},
	}}
	doc, err := Read(rests, "", Config{})
	require.NoError(t, err)

	item, _ := doc.Paths.Get("/search")
	params := item.Get.Parameters
	require.Len(t, params, 3)

	sizes := params[0]
	assert.Equal(t, "array", sizes.Type)
	assert.False(t, sizes.Required)
	assert.Equal(t, "multi", sizes.CollectionFormat)
	assert.Nil(t, sizes.Enum, "array parameters carry the enum on their items")
	require.NotNil(t, sizes.Items)
	assert.Equal(t, "integer", sizes.Items.Type)
	assert.Equal(t, []any{int32(1), int32(2), int32(3)}, sizes.Items.Enum)

	sort := params[1]
	assert.Equal(t, "string", sort.Type)
	assert.Equal(t, []any{"asc", "desc"}, sort.Enum)
	assert.Equal(t, "asc", sort.Default)
	assert.Equal(t, map[string]any{"ascending": "asc"}, sort.Extra[ExtExamples])

	limit := params[2]
	assert.Equal(t, "header", limit.In)
	assert.Equal(t, "int32", limit.Format)
	assert.True(t, limit.Required)
}

func TestEnumCoercionFailure(t *testing.T) {
	rests := []*Rest{{
		Path: "/bad",
		Verbs: []*Verb{{
			Method: "get",
			Params: []*Param{{
				Name:            "ids",
				Type:            ParamQuery,
				DataType:        "array",
				ArrayType:       "long",
				AllowableValues: []string{"1", "two"},
			}},
		}},
	}}
	_, err := Read(rests, "", Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrEnumCoercion))

	var coerceErr *oaserrors.EnumCoercionError
	require.True(t, errors.As(err, &coerceErr))
	assert.Equal(t, "two", coerceErr.Value)
	assert.Equal(t, "ids", coerceErr.Parameter)

	// a custom coercer is consulted instead
	doc, err := Read(rests, "", Config{}, WithValueCoercer(ValueCoercerFunc(func(_, v string) (any, error) {
		return "coerced-" + v, nil
	})))
	require.NoError(t, err)
	item, _ := doc.Paths.Get("/bad")
	assert.Equal(t, []any{"coerced-1", "coerced-two"}, item.Get.Parameters[0].Items.Enum)
}

func TestResponses(t *testing.T) {
	rests := []*Rest{{
		Path: "/bye",
		Verbs: []*Verb{{
			Method:  "get",
			OutType: "string[]",
			ResponseMsgs: []*ResponseMsg{
				{Message: "A reply number", ResponseModel: "float"},
				{
					Code:    "404",
					Message: "Not found",
					Headers: []*ResponseHeader{
						{Name: "X-Count", DataType: "long", Example: "3"},
						{Name: "X-Ratio", DataType: "double"},
						{Name: "X-Tags", DataType: "array", ArrayType: "string"},
						{Name: "X-Mode", AllowableValues: []string{"a", "b"}},
						{Name: "X-Ignored", DataType: "date"},
					},
					Examples: []Property{{Key: "success", Value: "123"}, {Key: "error", Value: "-1"}},
				},
			},
		}},
	}}
	doc, err := Read(rests, "", Config{})
	require.NoError(t, err)

	item, _ := doc.Paths.Get("/bye")
	responses := item.Get.Responses
	assert.Equal(t, []string{"200", "404"}, responses.Keys())

	ok, _ := responses.Get("200")
	// the response message overrides the output type
	assert.Equal(t, "A reply number", ok.Description)
	assert.Equal(t, "number", ok.Schema.Type)
	assert.Equal(t, "float", ok.Schema.Format)

	nf, _ := responses.Get("404")
	assert.Equal(t, map[string]any{"success": "123", "error": "-1"}, nf.Examples)
	require.Len(t, nf.Headers, 4)
	assert.Equal(t, "integer", nf.Headers["X-Count"].Type)
	assert.Equal(t, "int64", nf.Headers["X-Count"].Format)
	assert.Equal(t, "3", nf.Headers["X-Count"].Extra[ExtExample])
	assert.Equal(t, "number", nf.Headers["X-Ratio"].Type)
	assert.Equal(t, "double", nf.Headers["X-Ratio"].Format)
	assert.Equal(t, "array", nf.Headers["X-Tags"].Type)
	assert.Equal(t, "string", nf.Headers["X-Tags"].Items.Type)
	assert.Equal(t, []any{"a", "b"}, nf.Headers["X-Mode"].Enum)
}

func TestOutTypeResponse(t *testing.T) {
	rests := []*Rest{{
		Path:  "/list",
		Verbs: []*Verb{{Method: "get", OutType: "long[]"}},
	}}
	doc, err := Read(rests, "", Config{})
	require.NoError(t, err)

	item, _ := doc.Paths.Get("/list")
	ok, _ := item.Get.Responses.Get("200")
	assert.Equal(t, "Output type", ok.Description)
	assert.Equal(t, "array", ok.Schema.Type)
	assert.Equal(t, "int64", ok.Schema.Items.Format)
}

func TestAPIDocsOverride(t *testing.T) {
	rests := []*Rest{{
		Path:    "/hello",
		APIDocs: Bool(false),
		Verbs: []*Verb{
			{Method: "get", URI: "/hi/{name}"},
			{Method: "get", URI: "/bye/{name}", APIDocs: Bool(true)},
			{Method: "post", URI: "/bye", Description: "To update the greeting message", OutType: "com.acme.Hidden"},
		},
	}}
	// the hidden verb's class is never resolved
	doc, err := Read(rests, "", Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"/hello/bye/{name}"}, doc.Paths.Keys())
}

func TestTypeResolution(t *testing.T) {
	resolver := NewStaticClassResolver()
	resolver.Add(Model{ClassName: "com.acme.Pet", Schema: &parser.Schema{
		Type:       "object",
		Properties: map[string]*parser.Schema{"category": {Ref: "#/definitions/Category"}},
	}}, "com.acme.Category")
	resolver.Add(Model{ClassName: "com.acme.Category", Schema: &parser.Schema{Type: "object"}})

	rests := []*Rest{{
		Path: "/pets",
		Verbs: []*Verb{
			{Method: "get", OutType: "com.acme.Pet[]"},
			{Method: "post", Type: "com.acme.Pet", Params: []*Param{{Name: "body", Type: ParamBody}}},
		},
	}}
	doc, err := Read(rests, "", Config{}, WithClassResolver(resolver))
	require.NoError(t, err)

	assert.Equal(t, []string{"Pet", "Category"}, doc.Definitions.Keys())
	for name, class := range map[string]string{"Pet": "com.acme.Pet", "Category": "com.acme.Category"} {
		def, _ := doc.Definitions.Get(name)
		cn, ok := typemap.ClassNameOf(def)
		require.True(t, ok)
		assert.Equal(t, class, cn)
	}

	item, _ := doc.Paths.Get("/pets")
	ok, _ := item.Get.Responses.Get("200")
	assert.Equal(t, "#/definitions/Pet", ok.Schema.Items.Ref)
	assert.Equal(t, "#/definitions/Pet", item.Post.Parameters[0].Schema.Ref)

	// declared models are not tagged in place
	pet, _ := resolver.ResolveClass("com.acme.Pet")
	_, tagged := pet[0].Schema.Extension(typemap.ExtClassName)
	assert.False(t, tagged)

	_, err = Read(rests, "", Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrTypeResolution))
	assert.True(t, errors.Is(err, ErrClassNotFound))
}

func TestConfigApply(t *testing.T) {
	rests := []*Rest{{Path: "/x", Verbs: []*Verb{{Method: "get", RouteID: "x"}}}}
	cfg := Config{
		Title:     "API",
		Version:   "1.2.3",
		Contact:   &Contact{Name: "Ops", Email: "ops@example.com"},
		License:   &License{Name: "Apache 2.0"},
		ContextID: "ctx-1",
	}
	doc, err := Read(rests, "", cfg)
	require.NoError(t, err)
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "API", doc.Info.Title)
	assert.Equal(t, "ops@example.com", doc.Info.Contact.Email)
	assert.Equal(t, "Apache 2.0", doc.Info.License.Name)

	item, _ := doc.Paths.Get("/x")
	assert.Equal(t, "ctx-1", item.Get.Extra[ExtContextID])
	assert.Equal(t, "x", item.Get.Extra[ExtRouteID])

	cfg.ClearVendorExtensions = true
	doc, err = Read(rests, "", cfg)
	require.NoError(t, err)
	item, _ = doc.Paths.Get("/x")
	assert.Empty(t, item.Get.Extra)
}

func TestUnsupportedMethod(t *testing.T) {
	_, err := Read([]*Rest{{Path: "/x", Verbs: []*Verb{{Method: "connect"}}}}, "", Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrInvalidArgument))
}

func TestRoundTrip(t *testing.T) {
	rf, err := LoadRoutesFile("../testdata/routes.yaml")
	require.NoError(t, err)

	doc, err := Read(rf.Rests, "", Config{Title: "Greetings", Version: "1"}, WithClassResolver(rf.ClassResolver()))
	require.NoError(t, err)

	data, err := parser.MarshalJSON(doc)
	require.NoError(t, err)
	result, err := parser.ParseBytes(data)
	require.NoError(t, err)
	back, ok := result.OAS2Document()
	require.True(t, ok)

	assert.Equal(t, doc.Paths.Keys(), back.Paths.Keys())
	assert.Equal(t, doc.Definitions.Keys(), back.Definitions.Keys())
	assert.Equal(t, parser.OperationIDs(doc), parser.OperationIDs(back))
	assert.ElementsMatch(t, keysOf(doc.SecurityDefinitions), keysOf(back.SecurityDefinitions))

	for path, item := range doc.Paths.All() {
		backItem, _ := back.Paths.Get(path)
		for method, op := range item.Operations() {
			backOp := backItem.GetOperation(method)
			require.NotNil(t, backOp, "%s %s", method, path)
			assert.Equal(t, op.Responses.Keys(), backOp.Responses.Keys())
			require.Len(t, backOp.Parameters, len(op.Parameters))
			for i, p := range op.Parameters {
				bp := backOp.Parameters[i]
				assert.Equal(t, p.Name, bp.Name)
				assert.Equal(t, p.In, bp.In)
				assert.Equal(t, p.Type, bp.Type)
				assert.Equal(t, p.Required, bp.Required)
			}
		}
	}

	def, _ := back.Definitions.Get("Greeting")
	cn, ok := typemap.ClassNameOf(def)
	require.True(t, ok)
	assert.Equal(t, "com.example.greeting.Greeting", cn)
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
