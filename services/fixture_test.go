package services

import (
	"context"
	"testing"
	"time"

	"film-backend/models"
	"film-backend/store"

	"github.com/stretchr/testify/require"
)

var (
	comedy     = models.Genre{ID: 1, Name: "Comedy"}
	drama      = models.Genre{ID: 2, Name: "Drama"}
	nolan      = models.Director{ID: 1, Name: "Christopher Nolan"}
	villeneuve = models.Director{ID: 2, Name: "Denis Villeneuve"}
)

type fixture struct {
	store   *store.MemoryStore
	feed    *ActivityFeed
	ranking *RankingEngine
	reviews *ReviewScoreAggregator
	likes   *LikeService
	friends *FriendService
	recs    *RecommendationEngine
	index   *AffinityIndex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m := store.NewMemoryStore()
	feed := NewActivityFeed(m)
	index := NewAffinityIndex(m)
	return &fixture{
		store:   m,
		feed:    feed,
		ranking: NewRankingEngine(m, m),
		reviews: NewReviewScoreAggregator(m, m, m, feed),
		likes:   NewLikeService(m, m, feed),
		friends: NewFriendService(m, m, feed),
		recs:    NewRecommendationEngine(index, m, m),
		index:   index,
	}
}

func (f *fixture) film(id int64, name string, released time.Time, genres []models.Genre, directors ...models.Director) {
	f.store.PutFilm(models.Film{
		ID:          id,
		Name:        name,
		ReleaseDate: released,
		Genres:      genres,
		Directors:   directors,
	})
}

func (f *fixture) users(ids ...int64) {
	for _, id := range ids {
		f.store.PutUser(models.User{ID: id, Login: "user", Email: "user@example.com"})
	}
}

// like seeds likes directly, bypassing the feed.
func (f *fixture) like(t *testing.T, userID int64, filmIDs ...int64) {
	t.Helper()
	for _, filmID := range filmIDs {
		_, err := f.store.AddLike(context.Background(), filmID, userID)
		require.NoError(t, err)
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func filmIDs(films []models.Film) []int64 {
	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	return ids
}

func userIDs(users []models.User) []int64 {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func ptr[T any](v T) *T {
	return &v
}
