package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLike_KeepsRateInSync(t *testing.T) {
	f := newFixture(t)
	f.film(1, "Brazil", day(1985, 2, 20), nil)
	f.users(1, 2)
	ctx := context.Background()

	require.NoError(t, f.likes.Like(ctx, 1, 1))
	require.NoError(t, f.likes.Like(ctx, 1, 1))
	require.NoError(t, f.likes.Like(ctx, 1, 2))

	film, err := f.ranking.Film(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, film.Rate, "a repeated like counts once")

	require.NoError(t, f.likes.Unlike(ctx, 1, 2))
	film, err = f.ranking.Film(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, film.Rate)

	counts, err := f.store.LikeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, film.Rate, counts[1])
}

func TestLike_UnknownIDs(t *testing.T) {
	f := newFixture(t)
	f.film(1, "Brazil", day(1985, 2, 20), nil)
	f.users(1)
	ctx := context.Background()

	assert.ErrorIs(t, f.likes.Like(ctx, 2, 1), ErrNotFound)
	assert.ErrorIs(t, f.likes.Like(ctx, 1, 2), ErrNotFound)
	assert.ErrorIs(t, f.likes.Unlike(ctx, 2, 1), ErrNotFound)

	events, err := f.feed.Feed(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, events)
}
