package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestOrderedMap(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var m *OrderedMap[int]
		assert.Equal(t, 0, m.Len())
		assert.False(t, m.Has("a"))
		assert.Empty(t, m.Keys())
		data, err := m.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("set keeps position", func(t *testing.T) {
		m := NewOrderedMap[int]()
		m.Set("b", 1)
		m.Set("a", 2)
		m.Set("c", 3)
		m.Set("a", 20)
		assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 20, v)
		assert.Equal(t, 3, m.Len())

		m.Delete("b")
		assert.Equal(t, []string{"a", "c"}, m.Keys())
	})

	t.Run("json output in insertion order", func(t *testing.T) {
		m := NewOrderedMap[string]()
		m.Set("z", "<last>")
		m.Set("a", "first")
		data, err := m.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"z":"<last>","a":"first"}`, string(data))
	})

	t.Run("decode keeps source order", func(t *testing.T) {
		var m OrderedMap[int]
		require.NoError(t, yaml.Unmarshal([]byte("z: 1\nm: 2\na: 3\n"), &m))
		assert.Equal(t, []string{"z", "m", "a"}, m.Keys())

		var j OrderedMap[int]
		require.NoError(t, j.UnmarshalJSON([]byte(`{"y": 1, "b": 2}`)))
		assert.Equal(t, []string{"y", "b"}, j.Keys())
	})

	t.Run("decode rejects non mappings", func(t *testing.T) {
		var m OrderedMap[int]
		err := yaml.Unmarshal([]byte("- 1\n- 2\n"), &m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected a mapping, got sequence")
	})

	t.Run("yaml and json decoding agree", func(t *testing.T) {
		src := `{"paths": 1, "info": 2, "swagger": 3}`
		var fromYAML, fromJSON OrderedMap[int]
		require.NoError(t, yaml.Unmarshal([]byte(src), &fromYAML))
		require.NoError(t, json.Unmarshal([]byte(src), &fromJSON))
		assert.Equal(t, []string{"paths", "info", "swagger"}, fromYAML.Keys())
		assert.Equal(t, fromYAML.Keys(), fromJSON.Keys())
	})
}
