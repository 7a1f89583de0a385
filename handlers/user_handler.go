package handlers

import (
	"net/http"
	"strconv"

	"film-backend/models"
	"film-backend/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	friends  *services.FriendService
	affinity *services.AffinityIndex
	recs     *services.RecommendationEngine
	feed     *services.ActivityFeed
}

// NewUserHandler creates a new user handler
func NewUserHandler(friends *services.FriendService, affinity *services.AffinityIndex, recs *services.RecommendationEngine, feed *services.ActivityFeed) *UserHandler {
	return &UserHandler{
		friends:  friends,
		affinity: affinity,
		recs:     recs,
		feed:     feed,
	}
}

// existingUser parses :id and checks that the user exists
func (h *UserHandler) existingUser(c *gin.Context) (int64, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}
	if _, err := h.friends.User(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return 0, false
	}
	return id, true
}

// GetNeighbors returns the users with the largest like overlap
// GET /api/v1/users/:id/neighbors
func (h *UserHandler) GetNeighbors(c *gin.Context) {
	id, ok := h.existingUser(c)
	if !ok {
		return
	}
	neighbors, err := h.affinity.Neighbors(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userIds":  neighbors,
		"metadata": models.NewResponseMetadata(len(neighbors), "", nil),
	})
}

// GetRecommendations returns films liked by the user's neighbours
// GET /api/v1/users/:id/recommendations
func (h *UserHandler) GetRecommendations(c *gin.Context) {
	id, ok := h.existingUser(c)
	if !ok {
		return
	}
	films, err := h.recs.Recommend(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondFilms(c, films, "", map[string]string{"userId": strconv.FormatInt(id, 10)})
}

// GetFeed returns the user's activity, newest first
// GET /api/v1/users/:id/feed
func (h *UserHandler) GetFeed(c *gin.Context) {
	id, ok := h.existingUser(c)
	if !ok {
		return
	}
	events, err := h.feed.Feed(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events":   events,
		"metadata": models.NewResponseMetadata(len(events), "", nil),
	})
}

// GetFriends lists the user's friends
// GET /api/v1/users/:id/friends
func (h *UserHandler) GetFriends(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.friends.List(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUsers(c, users)
}

// GetCommonFriends lists friends shared by two users
// GET /api/v1/users/:id/friends/common/:otherId
func (h *UserHandler) GetCommonFriends(c *gin.Context) {
	ids, ok := pathIDs(c, "id", "otherId")
	if !ok {
		return
	}
	users, err := h.friends.Common(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUsers(c, users)
}

// AddFriend adds a directed friendship
// PUT /api/v1/users/:id/friends/:friendId
func (h *UserHandler) AddFriend(c *gin.Context) {
	ids, ok := pathIDs(c, "id", "friendId")
	if !ok {
		return
	}
	if err := h.friends.Add(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFriend removes a directed friendship
// DELETE /api/v1/users/:id/friends/:friendId
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	ids, ok := pathIDs(c, "id", "friendId")
	if !ok {
		return
	}
	if err := h.friends.Remove(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondUsers(c *gin.Context, users []models.User) {
	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"metadata": models.NewResponseMetadata(len(users), "", nil),
	})
}
