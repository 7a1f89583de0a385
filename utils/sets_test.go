package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Intersect(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(2, 3, 4)

	assert.Equal(t, []int64{2, 3}, a.Intersect(b).Sorted())
	assert.Equal(t, a.Intersect(b).Sorted(), b.Intersect(a).Sorted())
	assert.Empty(t, a.Intersect(NewSet()).Sorted())
}

func TestSet_Minus(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(2, 3, 4)

	assert.Equal(t, []int64{1}, a.Minus(b).Sorted())
	assert.Equal(t, []int64{4}, b.Minus(a).Sorted())
	assert.Equal(t, []int64{1, 2, 3}, a.Minus(NewSet()).Sorted())
}

func TestNewSet_DropsDuplicates(t *testing.T) {
	s := NewSet(5, 5, 1, 5)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(5))
	assert.False(t, s.Has(2))
}
