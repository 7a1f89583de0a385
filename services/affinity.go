package services

import (
	"context"

	"film-backend/logging"
	"film-backend/metrics"
	"film-backend/store"
	"film-backend/utils"
)

// AffinityIndex finds the users whose taste is closest to a given user's,
// measured by how many liked films they share.
type AffinityIndex struct {
	likes store.LikeReader
}

func NewAffinityIndex(likes store.LikeReader) *AffinityIndex {
	return &AffinityIndex{likes: likes}
}

// Neighbors returns every other user whose overlap with userID equals the
// maximum overlap found, in ascending id order. A user with no likes, or
// whose likes nobody shares, has no neighbours.
func (a *AffinityIndex) Neighbors(ctx context.Context, userID int64) (neighbors []int64, err error) {
	defer func() { metrics.ObserveOp("neighbors", len(neighbors), err) }()

	liked, err := a.likes.LikesOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	overlap := make(map[int64]int)
	best := 0
	for _, filmID := range liked {
		likers, err := a.likes.LikersOf(ctx, filmID)
		if err != nil {
			return nil, err
		}
		for _, other := range likers {
			if other == userID {
				continue
			}
			overlap[other]++
			best = max(best, overlap[other])
		}
	}

	top := utils.NewSet()
	for other, n := range overlap {
		if n == best {
			top.Add(other)
		}
	}
	neighbors = top.Sorted()

	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int("overlap", best).
		Int("neighbors", len(neighbors)).
		Msg("Computed neighbours")
	return neighbors, nil
}
