package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestOrderedMapPreservesDocumentOrder(t *testing.T) {
	src := `
zebra: {type: string}
alpha: {type: integer}
middle: {type: boolean}
`
	var m OrderedMap[*Schema]
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))

	assert.Equal(t, []string{"zebra", "alpha", "middle"}, m.Keys())
	v, ok := m.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "integer", v.Type)
}

func TestOrderedMapSet(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3) // replace keeps position

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, _ := m.Get("b")
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())
}

func TestOrderedMapNilSafety(t *testing.T) {
	var m *OrderedMap[string]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("x")
	assert.False(t, ok)
}

func TestOrderedMapRejectsNonMapping(t *testing.T) {
	var m OrderedMap[*Schema]
	err := yaml.Unmarshal([]byte("[1, 2]"), &m)
	assert.Error(t, err)
}

func TestOrderedMapRoundTrip(t *testing.T) {
	src := "b: 2\na: 1\nc: 3\n"
	var m OrderedMap[int]
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))

	out, err := yaml.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}
