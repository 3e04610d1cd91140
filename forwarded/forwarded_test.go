package forwarded

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restoas/parser"
)

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestApply(t *testing.T) {
	doc := parser.NewOAS2Document()
	doc.BasePath = "/base"

	changed := Apply(doc, header(
		HeaderPrefix, "/prefix",
		HeaderHost, "host",
		HeaderProto, "http, HTTPS ",
	))
	assert.True(t, changed)
	assert.Equal(t, "/prefix/base", doc.BasePath)
	assert.Equal(t, "host", doc.Host)
	assert.Equal(t, []string{"http", "https"}, doc.Schemes)
}

func TestApplyNonCanonicalKeys(t *testing.T) {
	doc := parser.NewOAS2Document()
	doc.BasePath = "/base"

	changed := Apply(doc, http.Header{
		"x-forwarded-prefix": {"/prefix"},
		"x-forwarded-host":   {"proxy.example.com"},
		"X-FORWARDED-PROTO":  {"https"},
	})
	assert.True(t, changed)
	assert.Equal(t, "/prefix/base", doc.BasePath)
	assert.Equal(t, "proxy.example.com", doc.Host)
	assert.Equal(t, []string{"https"}, doc.Schemes)
}

func TestApplyWithoutHeaders(t *testing.T) {
	doc := parser.NewOAS2Document()
	doc.BasePath = "/base"
	doc.Host = "api.example.com"
	before, err := parser.MarshalJSON(doc)
	require.NoError(t, err)

	for _, h := range []http.Header{nil, {}, header(HeaderPrefix, "", HeaderProto, " , ")} {
		assert.False(t, Apply(doc, h))
	}
	assert.Nil(t, doc.Schemes, "schemes are not even assigned an empty list")

	after, err := parser.MarshalJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestApplyOAS3Untouched(t *testing.T) {
	doc := parser.NewOAS3Document()
	assert.False(t, Apply(doc, header(HeaderHost, "host")))
	assert.False(t, Apply(nil, header(HeaderHost, "host")))
}

func TestJoinPrefix(t *testing.T) {
	tests := []struct {
		prefix   string
		basePath string
		want     string
	}{
		{"/prefix", "/base", "/prefix/base"},
		{"/prefix", "/base/", "/prefix/base/"},
		{"/prefix", "base", "/prefix/base"},
		{"/prefix", "base/", "/prefix/base/"},
		{"/prefix", "", "/prefix"},
		{"/prefix/", "/base", "/prefix/base"},
		{"/prefix/", "/base/", "/prefix/base/"},
		{"/prefix/", "base", "/prefix/base"},
		{"/prefix/", "base/", "/prefix/base/"},
		{"/prefix/", "", "/prefix/"},
		{"prefix", "/base", "prefix/base"},
		{"prefix", "base", "prefix/base"},
		{"prefix", "", "prefix"},
		{"prefix/", "/base/", "prefix/base/"},
		{"prefix/", "base/", "prefix/base/"},
		{"prefix/", "", "prefix/"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.basePath, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPrefix(tt.prefix, tt.basePath))
		})
	}
}

func TestSchemes(t *testing.T) {
	tests := []struct {
		proto string
		want  []string
	}{
		{"", nil},
		{",", nil},
		{" , ", nil},
		{"HTTPS,http", []string{"https", "http"}},
		{" HTTPS,  http ", []string{"https", "http"}},
		{",http,", []string{"http"}},
		{"hTtpS", []string{"https"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Schemes(tt.proto), tt.proto)
	}
}
