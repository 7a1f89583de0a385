package services

import (
	"context"
	"strings"

	"film-backend/logging"
	"film-backend/metrics"
	"film-backend/models"
	"film-backend/store"
	"film-backend/utils"
)

// PopularQuery selects the most liked films. Limit must be positive; GenreID
// and Year are optional filters.
type PopularQuery struct {
	Limit   int
	GenreID *int64
	Year    *int
}

// Director film orderings
const (
	DirectorSortLikes = "likes"
	DirectorSortYear  = "year"
)

// Search fields
const (
	SearchByTitle    = "title"
	SearchByDirector = "director"
)

// RankingEngine produces ordered film lists. Every listing goes through the
// same pipeline: enumerate, filter, attach like counts, sort, truncate.
type RankingEngine struct {
	catalog store.Catalog
	likes   store.LikeReader
}

func NewRankingEngine(catalog store.Catalog, likes store.LikeReader) *RankingEngine {
	return &RankingEngine{catalog: catalog, likes: likes}
}

type rankQuery struct {
	filter func(*models.Film) bool
	order  utils.SortConfig
	limit  int // 0 means no limit
}

func (r *RankingEngine) rank(ctx context.Context, q rankQuery) ([]models.RankedFilm, error) {
	films, err := r.catalog.Films(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := r.likes.LikeCounts(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.RankedFilm, 0, len(films))
	for i := range films {
		if q.filter != nil && !q.filter(&films[i]) {
			continue
		}
		ranked = append(ranked, models.RankedFilm{Film: films[i], LikeCount: counts[films[i].ID]})
	}

	utils.SortFilms(ranked, q.order)
	if q.limit > 0 {
		ranked = utils.Limit(ranked, q.limit)
	}
	return ranked, nil
}

// Film returns a single hydrated film.
func (r *RankingEngine) Film(ctx context.Context, id int64) (*models.Film, error) {
	f, err := r.catalog.Film(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "film", id)
	}
	return f, nil
}

// Popular returns at most q.Limit films ordered by like count, highest first.
func (r *RankingEngine) Popular(ctx context.Context, q PopularQuery) (films []models.Film, err error) {
	defer func() { metrics.ObserveOp("popular", len(films), err) }()

	if q.Limit <= 0 {
		return nil, invalidf("count must be positive, got %d", q.Limit)
	}
	if q.Year != nil && *q.Year < 1 {
		return nil, invalidf("year must be positive, got %d", *q.Year)
	}
	if q.GenreID != nil {
		if _, err := r.catalog.Genre(ctx, *q.GenreID); err != nil {
			return nil, lookupErr(err, "genre", *q.GenreID)
		}
	}

	ranked, err := r.rank(ctx, rankQuery{
		filter: func(f *models.Film) bool {
			if q.GenreID != nil && !f.HasGenre(*q.GenreID) {
				return false
			}
			return q.Year == nil || f.ReleaseDate.Year() == *q.Year
		},
		order: utils.SortLikesDesc,
		limit: q.Limit,
	})
	if err != nil {
		return nil, err
	}
	return models.FilmsOf(ranked), nil
}

// Common returns the films liked by both users, ordered by rate.
func (r *RankingEngine) Common(ctx context.Context, userID, otherID int64) (films []models.Film, err error) {
	defer func() { metrics.ObserveOp("common_films", len(films), err) }()

	for _, id := range []int64{userID, otherID} {
		if _, err := r.catalog.User(ctx, id); err != nil {
			return nil, lookupErr(err, "user", id)
		}
	}

	mine, err := r.likes.LikesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := r.likes.LikesOf(ctx, otherID)
	if err != nil {
		return nil, err
	}

	shared := utils.NewSet(mine...).Intersect(utils.NewSet(theirs...)).Sorted()
	hydrated, err := r.catalog.FilmsByIDs(ctx, shared)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.RankedFilm, len(hydrated))
	for i, f := range hydrated {
		ranked[i] = models.RankedFilm{Film: f, LikeCount: f.Rate}
	}
	utils.SortFilms(ranked, utils.SortRateDesc)
	return models.FilmsOf(ranked), nil
}

// ByDirector lists a director's films ordered by like count (sortKey
// "likes") or by release date (sortKey "year").
func (r *RankingEngine) ByDirector(ctx context.Context, directorID int64, sortKey string) (films []models.Film, err error) {
	defer func() { metrics.ObserveOp("director_films", len(films), err) }()

	var order utils.SortConfig
	switch sortKey {
	case DirectorSortLikes:
		order = utils.SortLikesDesc
	case DirectorSortYear:
		order = utils.SortReleaseAsc
	default:
		return nil, invalidf("unknown sort key %q", sortKey)
	}

	if _, err := r.catalog.Director(ctx, directorID); err != nil {
		return nil, lookupErr(err, "director", directorID)
	}

	ranked, err := r.rank(ctx, rankQuery{
		filter: func(f *models.Film) bool { return f.HasDirector(directorID) },
		order:  order,
	})
	if err != nil {
		return nil, err
	}
	return models.FilmsOf(ranked), nil
}

// Search matches query case-insensitively against film titles, director
// names, or both, and orders the hits by like count.
func (r *RankingEngine) Search(ctx context.Context, query, by string) (films []models.Film, err error) {
	defer func() { metrics.ObserveOp("search", len(films), err) }()

	byTitle, byDirector, err := parseSearchFields(by)
	if err != nil {
		return nil, err
	}

	ranked, err := r.rank(ctx, rankQuery{
		filter: func(f *models.Film) bool {
			if byTitle && utils.ContainsFold(f.Name, query) {
				return true
			}
			if byDirector {
				for _, d := range f.Directors {
					if utils.ContainsFold(d.Name, query) {
						return true
					}
				}
			}
			return false
		},
		order: utils.SortLikesDesc,
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().Str("query", query).Str("by", by).Int("hits", len(ranked)).Msg("Search complete")
	return models.FilmsOf(ranked), nil
}

// parseSearchFields accepts "title", "director" or both joined by a comma, in
// either order. An empty value means title.
func parseSearchFields(by string) (byTitle, byDirector bool, err error) {
	if strings.TrimSpace(by) == "" {
		return true, false, nil
	}
	for _, field := range strings.Split(by, ",") {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case SearchByTitle:
			byTitle = true
		case SearchByDirector:
			byDirector = true
		default:
			return false, false, invalidf("unknown search field %q", field)
		}
	}
	return byTitle, byDirector, nil
}
