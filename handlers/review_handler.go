package handlers

import (
	"net/http"

	"film-backend/models"
	"film-backend/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews      *services.ReviewScoreAggregator
	defaultCount int
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *services.ReviewScoreAggregator, defaultCount int) *ReviewHandler {
	return &ReviewHandler{
		reviews:      reviews,
		defaultCount: defaultCount,
	}
}

// Create adds a review
// POST /api/v1/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req models.NewReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	review, err := h.reviews.Create(c.Request.Context(), req.FilmID, req.UserID, req.Content, *req.IsPositive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update changes a review's content and verdict
// PUT /api/v1/reviews
func (h *ReviewHandler) Update(c *gin.Context) {
	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	review, err := h.reviews.Update(c.Request.Context(), req.ReviewID, req.Content, *req.IsPositive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// List returns reviews by usefulness
// GET /api/v1/reviews?filmId=1&count=10
func (h *ReviewHandler) List(c *gin.Context) {
	var req models.ReviewListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	q := services.ReviewListQuery{FilmID: req.FilmID, Limit: req.Count}
	switch {
	case q.Limit == nil:
		limit := h.defaultCount
		q.Limit = &limit
	case *q.Limit == 0 && q.FilmID != nil:
		// count=0 with a film lists every review of that film
		q.Limit = nil
	}

	reviews, err := h.reviews.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":  reviews,
		"metadata": models.NewResponseMetadata(len(reviews), "", nil),
	})
}

// Get returns one review
// GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	review, err := h.reviews.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Like marks a review useful
// PUT /api/v1/reviews/:id/like/:userId
func (h *ReviewHandler) Like(c *gin.Context) {
	h.vote(c, models.VoteUseful)
}

// Dislike marks a review useless
// PUT /api/v1/reviews/:id/dislike/:userId
func (h *ReviewHandler) Dislike(c *gin.Context) {
	h.vote(c, models.VoteUseless)
}

// RemoveVote withdraws a like or dislike
// DELETE /api/v1/reviews/:id/like/:userId
// DELETE /api/v1/reviews/:id/dislike/:userId
func (h *ReviewHandler) RemoveVote(c *gin.Context) {
	ids, ok := pathIDs(c, "id", "userId")
	if !ok {
		return
	}
	review, err := h.reviews.Unvote(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) vote(c *gin.Context, value int) {
	ids, ok := pathIDs(c, "id", "userId")
	if !ok {
		return
	}
	review, err := h.reviews.Vote(c.Request.Context(), ids[0], ids[1], value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
