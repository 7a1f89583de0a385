package services

import (
	"context"
	"fmt"

	"film-backend/logging"
	"film-backend/models"
	"film-backend/store"
)

// LikeService applies like and unlike actions and records them in the feed.
type LikeService struct {
	likes   store.LikeWriter
	catalog store.Catalog
	feed    *ActivityFeed
}

func NewLikeService(likes store.LikeWriter, catalog store.Catalog, feed *ActivityFeed) *LikeService {
	return &LikeService{likes: likes, catalog: catalog, feed: feed}
}

// Like marks filmID as liked by userID. Liking twice is not an error; the
// event is recorded either way.
func (s *LikeService) Like(ctx context.Context, filmID, userID int64) error {
	if err := s.check(ctx, filmID, userID); err != nil {
		return err
	}
	added, err := s.likes.AddLike(ctx, filmID, userID)
	if err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	if _, err := s.feed.Record(ctx, userID, models.EventTypeLike, models.OperationAdd, filmID); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Int64("film_id", filmID).Int64("user_id", userID).Bool("added", added).Msg("Like added")
	return nil
}

// Unlike withdraws userID's like of filmID.
func (s *LikeService) Unlike(ctx context.Context, filmID, userID int64) error {
	if err := s.check(ctx, filmID, userID); err != nil {
		return err
	}
	removed, err := s.likes.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	if _, err := s.feed.Record(ctx, userID, models.EventTypeLike, models.OperationRemove, filmID); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Int64("film_id", filmID).Int64("user_id", userID).Bool("removed", removed).Msg("Like removed")
	return nil
}

func (s *LikeService) check(ctx context.Context, filmID, userID int64) error {
	if _, err := s.catalog.Film(ctx, filmID); err != nil {
		return lookupErr(err, "film", filmID)
	}
	if _, err := s.catalog.User(ctx, userID); err != nil {
		return lookupErr(err, "user", userID)
	}
	return nil
}
