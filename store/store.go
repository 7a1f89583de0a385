// Package store is the boundary between the engine and durable state. The
// engine reads likes, friendships, votes and events only through these
// interfaces, so it can run against GormStore in production and MemoryStore
// in tests.
package store

import (
	"context"
	"errors"

	"film-backend/models"
)

// ErrNotFound is returned by single-record lookups that miss.
var ErrNotFound = errors.New("record not found")

// LikeReader exposes like facts.
type LikeReader interface {
	LikesOf(ctx context.Context, userID int64) ([]int64, error)
	LikersOf(ctx context.Context, filmID int64) ([]int64, error)
	// LikeCounts returns the number of likes per film; films without likes
	// may be absent from the map.
	LikeCounts(ctx context.Context) (map[int64]int, error)
}

// LikeWriter mutates likes. Both calls recompute Film.Rate in the same unit
// of work and report whether a row actually changed.
type LikeWriter interface {
	AddLike(ctx context.Context, filmID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, filmID, userID int64) (bool, error)
}

// FriendStore holds directed friendship edges.
type FriendStore interface {
	FriendsOf(ctx context.Context, userID int64) ([]int64, error)
	AddFriend(ctx context.Context, userID, friendID int64) (bool, error)
	RemoveFriend(ctx context.Context, userID, friendID int64) (bool, error)
}

// Catalog reads films, users and their attribute tags. Films come back
// hydrated with Mpa, Genres and Directors.
type Catalog interface {
	Film(ctx context.Context, id int64) (*models.Film, error)
	FilmsByIDs(ctx context.Context, ids []int64) ([]models.Film, error)
	Films(ctx context.Context) ([]models.Film, error)
	Director(ctx context.Context, id int64) (*models.Director, error)
	Genre(ctx context.Context, id int64) (*models.Genre, error)
	User(ctx context.Context, id int64) (*models.User, error)
	UsersByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

// VoteStore holds review usefulness votes, at most one per (review, user).
type VoteStore interface {
	VotesOf(ctx context.Context, reviewID int64) ([]models.UsefulVote, error)
	// ReplaceVote drops any existing vote for the pair and inserts v, atomically.
	ReplaceVote(ctx context.Context, v models.UsefulVote) error
	DeleteVote(ctx context.Context, reviewID, userID int64) (bool, error)
}

// ReviewStore holds review records. Reviews are returned without Useful set.
type ReviewStore interface {
	Review(ctx context.Context, id int64) (*models.Review, error)
	// Reviews lists reviews of one film, or of all films when filmID is nil.
	Reviews(ctx context.Context, filmID *int64) ([]models.Review, error)
	CreateReview(ctx context.Context, r *models.Review) error
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id int64) (bool, error)
}

// EventLog is the append-only activity log.
type EventLog interface {
	// AppendEvent stores e and assigns e.ID.
	AppendEvent(ctx context.Context, e *models.Event) error
	// EventsOf returns the user's events newest first: timestamp descending,
	// then ID descending.
	EventsOf(ctx context.Context, userID int64) ([]models.Event, error)
}

// Store is the full fact store.
type Store interface {
	LikeReader
	LikeWriter
	FriendStore
	Catalog
	VoteStore
	ReviewStore
	EventLog
}

// WithEventLog returns s with its event log replaced by log.
func WithEventLog(s Store, log EventLog) Store {
	return &composite{Store: s, log: log}
}

type composite struct {
	Store
	log EventLog
}

func (c *composite) AppendEvent(ctx context.Context, e *models.Event) error {
	return c.log.AppendEvent(ctx, e)
}

func (c *composite) EventsOf(ctx context.Context, userID int64) ([]models.Event, error) {
	return c.log.EventsOf(ctx, userID)
}
