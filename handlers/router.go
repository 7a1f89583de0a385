package handlers

import (
	"net/http"

	"film-backend/logging"
	"film-backend/metrics"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Films   *FilmHandler
	Users   *UserHandler
	Reviews *ReviewHandler
}

// NewRouter builds the gin engine with middleware and all API routes
func NewRouter(h *Handlers, metricsEnabled bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), logging.GinLogger())
	if metricsEnabled {
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", Health)

		films := v1.Group("/films")
		{
			films.GET("/popular", h.Films.GetPopular)
			films.GET("/common", h.Films.GetCommon)
			films.GET("/search", h.Films.Search)
			films.GET("/director/:directorId", h.Films.GetByDirector)
			films.GET("/:id", h.Films.GetFilm)
			films.PUT("/:id/like/:userId", h.Films.AddLike)
			films.DELETE("/:id/like/:userId", h.Films.RemoveLike)
		}

		users := v1.Group("/users/:id")
		{
			users.GET("/neighbors", h.Users.GetNeighbors)
			users.GET("/recommendations", h.Users.GetRecommendations)
			users.GET("/feed", h.Users.GetFeed)
			users.GET("/friends", h.Users.GetFriends)
			users.GET("/friends/common/:otherId", h.Users.GetCommonFriends)
			users.PUT("/friends/:friendId", h.Users.AddFriend)
			users.DELETE("/friends/:friendId", h.Users.RemoveFriend)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.POST("", h.Reviews.Create)
			reviews.PUT("", h.Reviews.Update)
			reviews.GET("", h.Reviews.List)
			reviews.GET("/:id", h.Reviews.Get)
			reviews.DELETE("/:id", h.Reviews.Delete)
			reviews.PUT("/:id/like/:userId", h.Reviews.Like)
			reviews.PUT("/:id/dislike/:userId", h.Reviews.Dislike)
			reviews.DELETE("/:id/like/:userId", h.Reviews.RemoveVote)
			reviews.DELETE("/:id/dislike/:userId", h.Reviews.RemoveVote)
		}
	}

	return r
}

// Health reports liveness
// GET /api/v1/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
