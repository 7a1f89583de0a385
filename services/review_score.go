package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"film-backend/logging"
	"film-backend/metrics"
	"film-backend/models"
	"film-backend/store"
	"film-backend/utils"
)

// MaxReviewLength bounds review content, in characters.
const MaxReviewLength = 350

// ReviewListQuery filters a review listing. A nil FilmID lists reviews of
// every film; a nil Limit means no limit.
type ReviewListQuery struct {
	FilmID *int64
	Limit  *int
}

// ReviewScoreAggregator owns reviews and their usefulness score: the live
// sum of +1/-1 votes, at most one per user.
type ReviewScoreAggregator struct {
	reviews store.ReviewStore
	votes   store.VoteStore
	catalog store.Catalog
	feed    *ActivityFeed
}

func NewReviewScoreAggregator(reviews store.ReviewStore, votes store.VoteStore, catalog store.Catalog, feed *ActivityFeed) *ReviewScoreAggregator {
	return &ReviewScoreAggregator{reviews: reviews, votes: votes, catalog: catalog, feed: feed}
}

// =============================================================================
// Votes
// =============================================================================

// Vote sets userID's verdict on the review, replacing any earlier one, and
// returns the review with its new score.
func (a *ReviewScoreAggregator) Vote(ctx context.Context, reviewID, userID int64, value int) (*models.Review, error) {
	if !models.IsValidVote(value) {
		return nil, invalidf("vote must be %d or %d, got %d", models.VoteUseful, models.VoteUseless, value)
	}
	if err := a.checkReviewAndUser(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	vote := models.UsefulVote{ReviewID: reviewID, UserID: userID, Value: value}
	if err := a.votes.ReplaceVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("store vote: %w", err)
	}
	if _, err := a.feed.Record(ctx, userID, models.EventTypeReview, models.OperationAdd, reviewID); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("review_id", reviewID).Int64("user_id", userID).Int("value", value).Msg("Vote replaced")
	return a.Get(ctx, reviewID)
}

// Unvote withdraws userID's verdict on the review, if any.
func (a *ReviewScoreAggregator) Unvote(ctx context.Context, reviewID, userID int64) (*models.Review, error) {
	if err := a.checkReviewAndUser(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	removed, err := a.votes.DeleteVote(ctx, reviewID, userID)
	if err != nil {
		return nil, fmt.Errorf("delete vote: %w", err)
	}
	if removed {
		if _, err := a.feed.Record(ctx, userID, models.EventTypeReview, models.OperationRemove, reviewID); err != nil {
			return nil, err
		}
	}
	return a.Get(ctx, reviewID)
}

// Score returns the sum of the review's votes.
func (a *ReviewScoreAggregator) Score(ctx context.Context, reviewID int64) (int, error) {
	if _, err := a.reviews.Review(ctx, reviewID); err != nil {
		return 0, lookupErr(err, "review", reviewID)
	}
	return a.score(ctx, reviewID)
}

func (a *ReviewScoreAggregator) score(ctx context.Context, reviewID int64) (int, error) {
	votes, err := a.votes.VotesOf(ctx, reviewID)
	if err != nil {
		return 0, fmt.Errorf("load votes of review %d: %w", reviewID, err)
	}
	total := 0
	for _, v := range votes {
		total += v.Value
	}
	return total, nil
}

func (a *ReviewScoreAggregator) checkReviewAndUser(ctx context.Context, reviewID, userID int64) error {
	if _, err := a.reviews.Review(ctx, reviewID); err != nil {
		return lookupErr(err, "review", reviewID)
	}
	if _, err := a.catalog.User(ctx, userID); err != nil {
		return lookupErr(err, "user", userID)
	}
	return nil
}

// =============================================================================
// Listing
// =============================================================================

// List returns reviews ordered by score descending, ties by review id.
func (a *ReviewScoreAggregator) List(ctx context.Context, q ReviewListQuery) (reviews []models.Review, err error) {
	defer func() { metrics.ObserveOp("reviews", len(reviews), err) }()

	if q.Limit != nil && *q.Limit < 0 {
		return nil, invalidf("count must not be negative, got %d", *q.Limit)
	}

	reviews, err = a.reviews.Reviews(ctx, q.FilmID)
	if err != nil {
		return nil, err
	}

	scores := make(map[int64]int, len(reviews))
	for i := range reviews {
		s, err := a.score(ctx, reviews[i].ID)
		if err != nil {
			return nil, err
		}
		reviews[i].Useful = s
		scores[reviews[i].ID] = s
	}

	utils.SortByScoreMap(reviews, scores, utils.Descending)
	if q.Limit != nil {
		reviews = utils.Limit(reviews, *q.Limit)
	}
	return reviews, nil
}

// =============================================================================
// Review lifecycle
// =============================================================================

// Get returns a review with its current score.
func (a *ReviewScoreAggregator) Get(ctx context.Context, id int64) (*models.Review, error) {
	r, err := a.reviews.Review(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "review", id)
	}
	if r.Useful, err = a.score(ctx, id); err != nil {
		return nil, err
	}
	return r, nil
}

// Create stores a new review by userID of filmID.
func (a *ReviewScoreAggregator) Create(ctx context.Context, filmID, userID int64, content string, positive bool) (*models.Review, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}
	if _, err := a.catalog.User(ctx, userID); err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	if _, err := a.catalog.Film(ctx, filmID); err != nil {
		return nil, lookupErr(err, "film", filmID)
	}

	r := &models.Review{FilmID: filmID, UserID: userID, Content: content, IsPositive: positive}
	if err := a.reviews.CreateReview(ctx, r); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if _, err := a.feed.Record(ctx, userID, models.EventTypeReview, models.OperationAdd, r.ID); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the content and verdict of a review. The film and author
// never change.
func (a *ReviewScoreAggregator) Update(ctx context.Context, id int64, content string, positive bool) (*models.Review, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}
	existing, err := a.reviews.Review(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "review", id)
	}

	existing.Content = content
	existing.IsPositive = positive
	if err := a.reviews.UpdateReview(ctx, existing); err != nil {
		return nil, lookupErr(err, "review", id)
	}
	if _, err := a.feed.Record(ctx, existing.UserID, models.EventTypeReview, models.OperationUpdate, id); err != nil {
		return nil, err
	}
	return a.Get(ctx, id)
}

// Delete removes a review together with its votes.
func (a *ReviewScoreAggregator) Delete(ctx context.Context, id int64) error {
	existing, err := a.reviews.Review(ctx, id)
	if err != nil {
		return lookupErr(err, "review", id)
	}
	removed, err := a.reviews.DeleteReview(ctx, id)
	if err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	if !removed {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	_, err = a.feed.Record(ctx, existing.UserID, models.EventTypeReview, models.OperationRemove, id)
	return err
}

func checkContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return invalidf("content must not be blank")
	}
	n := utf8.RuneCountInString(content)
	if n > MaxReviewLength {
		return invalidf("content must be 1 to %d characters, got %d", MaxReviewLength, n)
	}
	return nil
}
