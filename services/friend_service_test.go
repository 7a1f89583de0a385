package services

import (
	"context"
	"testing"

	"film-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriends_Directed(t *testing.T) {
	f := newFixture(t)
	f.users(1, 2, 3)
	ctx := context.Background()

	require.NoError(t, f.friends.Add(ctx, 1, 2))
	require.NoError(t, f.friends.Add(ctx, 1, 3))

	mine, err := f.friends.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, userIDs(mine))

	theirs, err := f.friends.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	require.NoError(t, f.friends.Remove(ctx, 1, 2))
	mine, err = f.friends.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, userIDs(mine))

	events, err := f.feed.Feed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, models.OperationRemove, events[0].Operation)
	assert.Equal(t, models.EventTypeFriend, events[0].EventType)
}

func TestFriends_Errors(t *testing.T) {
	f := newFixture(t)
	f.users(1)
	ctx := context.Background()

	assert.ErrorIs(t, f.friends.Add(ctx, 1, 1), ErrInvalidArgument)
	assert.ErrorIs(t, f.friends.Add(ctx, 1, 9), ErrNotFound)
	assert.ErrorIs(t, f.friends.Remove(ctx, 9, 1), ErrNotFound)
	_, err := f.friends.List(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.friends.User(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFriends_Common(t *testing.T) {
	f := newFixture(t)
	f.users(1, 2, 3, 4, 5)
	ctx := context.Background()

	for _, edge := range [][2]int64{{1, 3}, {1, 4}, {1, 5}, {2, 4}, {2, 5}, {2, 1}} {
		require.NoError(t, f.friends.Add(ctx, edge[0], edge[1]))
	}

	common, err := f.friends.Common(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, userIDs(common))

	none, err := f.friends.Common(ctx, 3, 4)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.friends.Common(ctx, 1, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
