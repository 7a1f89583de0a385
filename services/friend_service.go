package services

import (
	"context"
	"fmt"

	"film-backend/logging"
	"film-backend/models"
	"film-backend/store"
	"film-backend/utils"
)

// FriendService manages directed friendship edges. Adding B as A's friend
// does not make A a friend of B.
type FriendService struct {
	friends store.FriendStore
	catalog store.Catalog
	feed    *ActivityFeed
}

func NewFriendService(friends store.FriendStore, catalog store.Catalog, feed *ActivityFeed) *FriendService {
	return &FriendService{friends: friends, catalog: catalog, feed: feed}
}

// User resolves a user id.
func (s *FriendService) User(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.catalog.User(ctx, id)
	if err != nil {
		logging.Ctx(ctx).Warn().Int64("user_id", id).Msg("User lookup missed")
		return nil, lookupErr(err, "user", id)
	}
	return u, nil
}

func (s *FriendService) Add(ctx context.Context, userID, friendID int64) error {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return err
	}
	added, err := s.friends.AddFriend(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("add friend: %w", err)
	}
	if _, err := s.feed.Record(ctx, userID, models.EventTypeFriend, models.OperationAdd, friendID); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Int64("user_id", userID).Int64("friend_id", friendID).Bool("added", added).Msg("Friend added")
	return nil
}

func (s *FriendService) Remove(ctx context.Context, userID, friendID int64) error {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return err
	}
	removed, err := s.friends.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}
	if _, err := s.feed.Record(ctx, userID, models.EventTypeFriend, models.OperationRemove, friendID); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Int64("user_id", userID).Int64("friend_id", friendID).Bool("removed", removed).Msg("Friend removed")
	return nil
}

// List returns userID's friends ordered by id.
func (s *FriendService) List(ctx context.Context, userID int64) ([]models.User, error) {
	if _, err := s.User(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.friends.FriendsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.catalog.UsersByIDs(ctx, ids)
}

// Common returns the users that both userID and otherID list as friends.
func (s *FriendService) Common(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	for _, id := range []int64{userID, otherID} {
		if _, err := s.User(ctx, id); err != nil {
			return nil, err
		}
	}

	mine, err := s.friends.FriendsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.friends.FriendsOf(ctx, otherID)
	if err != nil {
		return nil, err
	}
	shared := utils.NewSet(mine...).Intersect(utils.NewSet(theirs...))
	return s.catalog.UsersByIDs(ctx, shared.Sorted())
}

func (s *FriendService) checkPair(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return invalidf("user %d cannot befriend themselves", userID)
	}
	for _, id := range []int64{userID, friendID} {
		if _, err := s.User(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
