package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"film-backend/models"
	"film-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_TimestampsStrictlyIncrease(t *testing.T) {
	feed := NewActivityFeed(store.NewMemoryStore())
	frozen := time.UnixMilli(1_700_000_000_000)
	feed.now = func() time.Time { return frozen }

	ctx := context.Background()
	var last int64
	for i := 0; i < 5; i++ {
		e, err := feed.Record(ctx, 1, models.EventTypeLike, models.OperationAdd, int64(i))
		require.NoError(t, err)
		assert.Greater(t, e.Timestamp, last)
		last = e.Timestamp
	}
	assert.Equal(t, frozen.UnixMilli()+4, last)
}

func TestRecord_ClockStepsBack(t *testing.T) {
	feed := NewActivityFeed(store.NewMemoryStore())
	ctx := context.Background()

	feed.now = func() time.Time { return time.UnixMilli(5000) }
	first, err := feed.Record(ctx, 1, models.EventTypeFriend, models.OperationAdd, 2)
	require.NoError(t, err)

	feed.now = func() time.Time { return time.UnixMilli(1000) }
	second, err := feed.Record(ctx, 1, models.EventTypeFriend, models.OperationRemove, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), first.Timestamp)
	assert.Equal(t, int64(5001), second.Timestamp)
}

func TestRecord_Concurrent(t *testing.T) {
	feed := NewActivityFeed(store.NewMemoryStore())
	ctx := context.Background()

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := feed.Record(ctx, user, models.EventTypeLike, models.OperationAdd, int64(i))
				assert.NoError(t, err)
			}
		}(int64(w % 2))
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, user := range []int64{0, 1} {
		events, err := feed.Feed(ctx, user)
		require.NoError(t, err)
		for _, e := range events {
			assert.False(t, seen[e.Timestamp], "timestamp %d issued twice", e.Timestamp)
			seen[e.Timestamp] = true
		}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestRecord_RejectsUnknownEnums(t *testing.T) {
	feed := NewActivityFeed(store.NewMemoryStore())
	ctx := context.Background()

	_, err := feed.Record(ctx, 1, models.EventType("VIEW"), models.OperationAdd, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = feed.Record(ctx, 1, models.EventTypeLike, models.Operation("UPSERT"), 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	events, err := feed.Feed(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, events, "rejected events are not stored")
}

func TestFeed_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.film(10, "Alien", day(1979, 5, 25), nil)
	f.users(1, 2)
	ctx := context.Background()

	require.NoError(t, f.likes.Like(ctx, 10, 1))
	require.NoError(t, f.friends.Add(ctx, 1, 2))
	require.NoError(t, f.likes.Unlike(ctx, 10, 1))

	events, err := f.feed.Feed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, models.EventTypeLike, events[0].EventType)
	assert.Equal(t, models.OperationRemove, events[0].Operation)
	assert.Equal(t, models.EventTypeFriend, events[1].EventType)
	assert.Equal(t, int64(2), events[1].EntityID)
	assert.Equal(t, models.OperationAdd, events[2].Operation)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].NewerThan(events[i]))
	}

	other, err := f.feed.Feed(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other, "the friend does not see the adder's event")
}
