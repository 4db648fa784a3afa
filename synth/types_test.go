package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAddAndGet(t *testing.T) {
	r := NewRegistry()
	h := r.Add(&SynthesizedType{Name: "User", Kind: KindObject})
	assert.Equal(t, 0, h)
	assert.True(t, r.Contains("User"))
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get("User")
	assert.True(t, ok)
	assert.Equal(t, "User", got.Name)
	assert.Same(t, got, r.At(h))

	_, ok = r.Get("Missing")
	assert.False(t, ok)
}

// Re-adding a name replaces the entry but keeps its emission position.
func TestRegistryReplaceInPlace(t *testing.T) {
	r := NewRegistry()
	r.Add(&SynthesizedType{Name: "A", Kind: KindObject})
	r.Add(&SynthesizedType{Name: "B", Kind: KindObject})
	h := r.Add(&SynthesizedType{Name: "A", Kind: KindAlias})

	assert.Equal(t, 0, h)
	assert.Equal(t, []string{"A", "B"}, r.Names())
	got, _ := r.Get("A")
	assert.Equal(t, KindAlias, got.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "enumeration", KindEnum.String())
	assert.Equal(t, "primitive-alias", KindAlias.String())
	assert.Equal(t, "union", KindUnion.String())
}
