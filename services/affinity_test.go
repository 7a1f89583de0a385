package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name     string
		likes    map[int64][]int64 // user -> films
		user     int64
		expected []int64
	}{
		{
			name:     "User without likes has no neighbours",
			likes:    map[int64][]int64{2: {1, 2}},
			user:     1,
			expected: []int64{},
		},
		{
			name:     "Likes nobody shares yield no neighbours",
			likes:    map[int64][]int64{1: {1}, 2: {2}},
			user:     1,
			expected: []int64{},
		},
		{
			name:     "Single user with the largest overlap",
			likes:    map[int64][]int64{1: {1, 2, 3}, 2: {1, 2}, 3: {3}},
			user:     1,
			expected: []int64{2},
		},
		{
			name:     "All users tied at the maximum are kept",
			likes:    map[int64][]int64{1: {1, 2, 3}, 2: {1, 2}, 3: {2, 3}, 4: {1}},
			user:     1,
			expected: []int64{2, 3},
		},
		{
			name:     "Everyone sharing one like are all neighbours",
			likes:    map[int64][]int64{1: {7}, 2: {7, 8}, 3: {7}, 4: {7, 9}},
			user:     1,
			expected: []int64{2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for user, films := range tt.likes {
				f.like(t, user, films...)
			}

			got, err := f.index.Neighbors(context.Background(), tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, tt.user)
		})
	}
}

func TestNeighbors_Symmetric(t *testing.T) {
	f := newFixture(t)
	f.like(t, 1, 1, 2)
	f.like(t, 2, 1, 2)

	ctx := context.Background()
	a, err := f.index.Neighbors(ctx, 1)
	require.NoError(t, err)
	b, err := f.index.Neighbors(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, a)
	assert.Equal(t, []int64{1}, b)
}
