package handlers

import (
	"net/http"
	"strconv"

	"film-backend/models"
	"film-backend/services"

	"github.com/gin-gonic/gin"
)

type FilmHandler struct {
	ranking      *services.RankingEngine
	likes        *services.LikeService
	defaultCount int
}

// NewFilmHandler creates a new film handler
func NewFilmHandler(ranking *services.RankingEngine, likes *services.LikeService, defaultCount int) *FilmHandler {
	return &FilmHandler{
		ranking:      ranking,
		likes:        likes,
		defaultCount: defaultCount,
	}
}

// GetFilm returns one film
// GET /api/v1/films/:id
func (h *FilmHandler) GetFilm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	film, err := h.ranking.Film(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// GetPopular returns the most liked films
// GET /api/v1/films/popular?count=10&genreId=1&year=1999
func (h *FilmHandler) GetPopular(c *gin.Context) {
	var req models.PopularRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	q := services.PopularQuery{Limit: h.defaultCount, GenreID: req.GenreID, Year: req.Year}
	if req.Count != nil {
		q.Limit = *req.Count
	}

	films, err := h.ranking.Popular(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filters := map[string]string{"count": strconv.Itoa(q.Limit)}
	if req.GenreID != nil {
		filters["genreId"] = strconv.FormatInt(*req.GenreID, 10)
	}
	if req.Year != nil {
		filters["year"] = strconv.Itoa(*req.Year)
	}
	respondFilms(c, films, "", filters)
}

// GetCommon returns the films both users like
// GET /api/v1/films/common?userId=1&friendId=2
func (h *FilmHandler) GetCommon(c *gin.Context) {
	var req models.CommonFilmsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "userId and friendId are required")
		return
	}

	films, err := h.ranking.Common(c.Request.Context(), req.UserID, req.FriendID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondFilms(c, films, "", map[string]string{
		"userId":   strconv.FormatInt(req.UserID, 10),
		"friendId": strconv.FormatInt(req.FriendID, 10),
	})
}

// GetByDirector returns a director's films
// GET /api/v1/films/director/:directorId?sortBy=likes|year
func (h *FilmHandler) GetByDirector(c *gin.Context) {
	directorID, ok := pathID(c, "directorId")
	if !ok {
		return
	}
	var req models.DirectorFilmsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "sortBy is required")
		return
	}

	films, err := h.ranking.ByDirector(c.Request.Context(), directorID, req.SortBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondFilms(c, films, "", map[string]string{"sortBy": req.SortBy})
}

// Search matches films by title and/or director name
// GET /api/v1/films/search?query=nolan&by=title,director
func (h *FilmHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "query is required")
		return
	}

	films, err := h.ranking.Search(c.Request.Context(), req.Query, req.By)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondFilms(c, films, req.Query, map[string]string{"by": req.By})
}

// AddLike records a user's like of a film
// PUT /api/v1/films/:id/like/:userId
func (h *FilmHandler) AddLike(c *gin.Context) {
	ids, ok := pathIDs(c, "id", "userId")
	if !ok {
		return
	}
	if err := h.likes.Like(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveLike withdraws a user's like of a film
// DELETE /api/v1/films/:id/like/:userId
func (h *FilmHandler) RemoveLike(c *gin.Context) {
	ids, ok := pathIDs(c, "id", "userId")
	if !ok {
		return
	}
	if err := h.likes.Unlike(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
