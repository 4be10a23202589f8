package digraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdering(t *testing.T) {
	d := Digraph[string]{}
	d.Add("a", []string{"b"})
	d.Add("b", []string{"c"})
	d.Add("c", []string{})
	order, cycle := Ordering(d)
	assert.Empty(t, cycle)
	assert.Equal(t, []string{"c", "b", "a"}, order)
}

func TestCycle(t *testing.T) {
	d := Digraph[string]{}
	d.Add("a", []string{"b"})
	d.Add("b", []string{"a"})
	d.Add("c", []string{})
	order, cycle := Ordering(d)
	assert.Equal(t, []string{"c"}, order)
	assert.NotEmpty(t, cycle)
}

func TestCheck(t *testing.T) {
	d := Digraph[string]{}
	d.Add("a", []string{"b"})
	ok, missing := d.Check()
	assert.False(t, ok)
	assert.Equal(t, "b", missing)
	d.Add("b", []string{})
	ok, _ = d.Check()
	assert.True(t, ok)
}

func TestTransitiveClosure(t *testing.T) {
	d := Digraph[string]{}
	d.AddTransitiveArrow("b", "c")
	d.AddTransitiveArrow("a", "b")
	assert.True(t, d.PointsTo("a", "c"))
	assert.True(t, d.PointsTo("b", "c"))
	assert.False(t, d.PointsTo("c", "a"))
	d.AddTransitiveArrow("z", "a")
	assert.True(t, d.PointsTo("z", "c"))
}
