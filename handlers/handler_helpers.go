package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"film-backend/logging"
	"film-backend/models"
	"film-backend/services"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// Response Helpers
// =============================================================================

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, code int, error, message string) {
	c.JSON(code, models.ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	})
}

// respondBadRequest sends a 400 error response
func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, "Invalid request", message)
}

// respondInternalError sends a 500 error response
func respondInternalError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, "Internal error", message)
}

// respondNotFound sends a 404 error response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, "Not found", message)
}

// respondServiceError maps a service error onto its status code. Unclassified
// errors are logged and reported without detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidArgument):
		respondBadRequest(c, err.Error())
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("Request failed")
		respondInternalError(c, "unexpected error")
	}
}

// respondFilms sends an ordered film list with its metadata
func respondFilms(c *gin.Context, films []models.Film, query string, filters map[string]string) {
	c.JSON(http.StatusOK, models.FilmListResponse{
		Films:    films,
		Metadata: models.NewResponseMetadata(len(films), query, filters),
	})
}

// =============================================================================
// Parameter Helpers
// =============================================================================

// pathID parses a numeric path parameter, answering 400 when it is malformed
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// pathIDs parses several path parameters in order
func pathIDs(c *gin.Context, names ...string) ([]int64, bool) {
	ids := make([]int64, len(names))
	for i, name := range names {
		id, ok := pathID(c, name)
		if !ok {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}
