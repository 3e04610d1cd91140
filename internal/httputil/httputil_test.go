package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"default keyword", "default", true},

		{"wildcard 2XX", "2XX", true},
		{"wildcard 5XX", "5XX", true},
		{"invalid wildcard 0XX", "0XX", false},
		{"invalid wildcard 6XX", "6XX", false},
		{"partial wildcard 20X", "20X", false},

		{"valid 100", "100", true},
		{"valid 200", "200", true},
		{"valid 418", "418", true},
		{"valid 599", "599", true},

		{"invalid 099", "099", false},
		{"invalid 600", "600", false},
		{"too short", "20", false},
		{"too long", "2000", false},
		{"letters", "abc", false},
		{"empty", "", false},
		{"extension is not a code", "x-custom", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateStatusCode(tt.code))
		})
	}
}

func TestIsValidMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		expected  bool
	}{
		{"any", "*/*", true},
		{"type wildcard", "application/*", true},
		{"json", "application/json", true},
		{"with params", "text/plain; charset=utf-8", true},
		{"subtype wildcard only", "*/json", false},
		{"empty type wildcard", "/*", false},
		{"no slash", "json", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidMediaType(tt.mediaType))
		})
	}
}

func TestIsMediaRangeList(t *testing.T) {
	assert.True(t, IsMediaRangeList("application/json"))
	assert.True(t, IsMediaRangeList("application/json, application/xml;q=0.9"))
	assert.False(t, IsMediaRangeList(""))
	assert.False(t, IsMediaRangeList("application/json, nope"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a , ,b,"))
	assert.Nil(t, SplitList(" , "))
}

func TestIsDefaultPort(t *testing.T) {
	assert.True(t, IsDefaultPort("http", 80))
	assert.True(t, IsDefaultPort("HTTPS", 443))
	assert.False(t, IsDefaultPort("https", 80))
	assert.False(t, IsDefaultPort("http", 8080))
	assert.False(t, IsDefaultPort("ftp", 21))
}

func TestEncodeUnsafe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "value1", "value1"},
		{"space", "va lue", "va%20lue"},
		{"braces", "{x}", "%7Bx%7D"},
		{"existing escape kept", "a%20b", "a%20b"},
		{"lone percent", "100%", "100%25"},
		{"question mark", "a?b", "a%3Fb"},
		{"unicode", "é", "%C3%A9"},
		{"unreserved kept", "a-b_c.d~e", "a-b_c.d~e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeUnsafe(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, EncodeUnsafe(got), "encoding must be idempotent")
		})
	}
}

func TestMethodOrder(t *testing.T) {
	assert.Equal(t, []string{"get", "put", "post", "delete", "patch", "head", "options"}, MethodOrder)
}
