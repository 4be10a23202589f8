package dtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := MakeFromSlice([]int{3, 1, 2})
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(5))
	s.Add(5)
	assert.True(t, s.Contains(5))
	assert.Equal(t, []int{1, 2, 3, 5}, s.ToSortedSlice(func(a, b int) bool { return a < b }))
	assert.True(t, s.OverlapsWith(MakeFromSlice([]int{5, 99})))
	assert.False(t, s.OverlapsWith(MakeFromSlice([]int{98, 99})))
	assert.True(t, MakeFromSlice([]int{1, 2}).Equals(MakeFromSlice([]int{2, 1})))
	assert.False(t, MakeFromSlice([]int{1, 2}).Equals(MakeFromSlice([]int{1, 3})))
	s.SubtractSet(MakeFromSlice([]int{1, 2, 3, 5}))
	assert.True(t, s.IsEmpty())
}

func TestStack(t *testing.T) {
	st := NewStack[string]()
	assert.True(t, st.IsEmpty())
	st.Push("a")
	st.Push("b")
	top, ok := st.HeadValue()
	assert.True(t, ok)
	assert.Equal(t, "b", top)
	assert.Equal(t, 0, st.Find("b"))
	assert.Equal(t, 1, st.Find("a"))
	popped, ok := st.Pop()
	assert.True(t, ok)
	assert.Equal(t, "b", popped)
	popped, ok = st.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", popped)
	_, ok = st.Pop()
	assert.False(t, ok)
}
