package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	ops := []string{"getPetById", "deletePet", "findPetsByStatus", "addPet", "updatePet"}

	tests := []struct {
		offset, limit int
		want          []string
	}{
		{0, 0, ops},
		{0, -1, ops},
		{0, 2, []string{"getPetById", "deletePet"}},
		{2, 0, []string{"findPetsByStatus", "addPet", "updatePet"}},
		{1, 2, []string{"deletePet", "findPetsByStatus"}},
		{4, 2, []string{"updatePet"}},
		{3, 10, []string{"addPet", "updatePet"}},
		{1, math.MaxInt, ops[1:]},
		{5, 2, nil},
		{-1, 2, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset=%d,limit=%d", tt.offset, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(ops, tt.offset, tt.limit))
		})
	}

	assert.Nil(t, paginate([]string(nil), 0, 2))
	assert.Nil(t, paginate([]string{}, 0, 2))
}

func TestPaginate_Caps(t *testing.T) {
	items := make([]int, cfg.MaxLimit+100)
	for i := range items {
		items[i] = i
	}
	assert.Len(t, paginate(items, 0, 0), cfg.EmitLimit)
	assert.Len(t, paginate(items, 0, cfg.MaxLimit+50), cfg.MaxLimit)
	assert.Equal(t, 10, paginate(items, 10, 1)[0])
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error returns empty string",
			err:  nil,
			want: "",
		},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("failed to open /home/user/secret/api.yaml: no such file"),
			want: "failed to open <path>: no such file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("invalid JSON at line 5"),
			want: "invalid JSON at line 5",
		},
		{
			name: "strips multiple paths",
			err:  fmt.Errorf("merge /tmp/a.yaml into /tmp/b.yaml failed"),
			want: "merge <path> into <path> failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[int](0))
	s := makeSlice[int](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestValidateGlobPatterns(t *testing.T) {
	assert.NoError(t, validateGlobPatterns(""))
	assert.NoError(t, validateGlobPatterns("getPet, find*, ?ddPet"))
	err := validateGlobPatterns("ok*, bad[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad["`)
}
