package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencyTrackerOrderAndUniqueness(t *testing.T) {
	d := NewDependencyTracker()
	d.Record("Order", "User")
	d.Record("Order", "Item")
	d.Record("Order", "User")
	d.Record("Order", "Address")

	assert.Equal(t, []string{"User", "Item", "Address"}, d.DepsOf("Order"))
	assert.Nil(t, d.DepsOf("User"))
}

func TestDependencyTrackerSelfReference(t *testing.T) {
	d := NewDependencyTracker()
	d.Record("Category", "Category")
	assert.Equal(t, []string{"Category"}, d.DepsOf("Category"))
}

func TestDependencyTrackerIgnoresEmpty(t *testing.T) {
	d := NewDependencyTracker()
	d.Record("", "User")
	d.Record("Order", "")
	assert.Nil(t, d.DepsOf(""))
	assert.Nil(t, d.DepsOf("Order"))
}
