package services

import (
	"context"

	"film-backend/logging"
	"film-backend/metrics"
	"film-backend/models"
	"film-backend/store"
	"film-backend/utils"
)

// RecommendationEngine suggests films liked by a user's neighbours that the
// user has not liked yet.
type RecommendationEngine struct {
	affinity *AffinityIndex
	likes    store.LikeReader
	catalog  store.Catalog
}

func NewRecommendationEngine(affinity *AffinityIndex, likes store.LikeReader, catalog store.Catalog) *RecommendationEngine {
	return &RecommendationEngine{affinity: affinity, likes: likes, catalog: catalog}
}

// Recommend returns the union of the neighbours' likes minus the user's own,
// each film once, ordered by film id.
func (r *RecommendationEngine) Recommend(ctx context.Context, userID int64) (films []models.Film, err error) {
	defer func() { metrics.ObserveOp("recommend", len(films), err) }()

	neighbors, err := r.affinity.Neighbors(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return []models.Film{}, nil
	}

	own, err := r.likes.LikesOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := utils.NewSet()
	for _, n := range neighbors {
		liked, err := r.likes.LikesOf(ctx, n)
		if err != nil {
			return nil, err
		}
		for _, filmID := range liked {
			candidates.Add(filmID)
		}
	}

	ids := candidates.Minus(utils.NewSet(own...)).Sorted()
	films, err = r.catalog.FilmsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int("neighbors", len(neighbors)).
		Int("films", len(films)).
		Msg("Computed recommendations")
	return films, nil
}
