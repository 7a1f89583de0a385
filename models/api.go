package models

// PopularRequest represents a request for the most liked films
type PopularRequest struct {
	Count   *int   `form:"count"`
	GenreID *int64 `form:"genreId"`
	Year    *int   `form:"year"`
}

// SearchRequest represents a film search by title and/or director name
type SearchRequest struct {
	Query string `form:"query" binding:"required"`
	By    string `form:"by"` // "title", "director" or "title,director"
}

// CommonFilmsRequest names the two users whose shared likes are listed
type CommonFilmsRequest struct {
	UserID   int64 `form:"userId" binding:"required"`
	FriendID int64 `form:"friendId" binding:"required"`
}

// DirectorFilmsRequest selects the ordering of a director's films
type DirectorFilmsRequest struct {
	SortBy string `form:"sortBy" binding:"required"` // "likes" or "year"
}

// ReviewListRequest filters the review listing; both fields are optional
type ReviewListRequest struct {
	FilmID *int64 `form:"filmId"`
	Count  *int   `form:"count"`
}

// NewReviewRequest is the body of POST /reviews
type NewReviewRequest struct {
	Content    string `json:"content" binding:"required"`
	IsPositive *bool  `json:"isPositive" binding:"required"`
	UserID     int64  `json:"userId" binding:"required"`
	FilmID     int64  `json:"filmId" binding:"required"`
}

// UpdateReviewRequest is the body of PUT /reviews
type UpdateReviewRequest struct {
	ReviewID   int64  `json:"reviewId" binding:"required"`
	Content    string `json:"content" binding:"required"`
	IsPositive *bool  `json:"isPositive" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// FilmListResponse wraps an ordered film list
type FilmListResponse struct {
	Films    []Film            `json:"films"`
	Metadata *ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a listing was produced
type ResponseMetadata struct {
	Count   int               `json:"count"`             // Number of records returned
	Query   string            `json:"query,omitempty"`   // Original query string
	Filters map[string]string `json:"filters,omitempty"` // Applied filters (genre, year, sort, ...)
}

// NewResponseMetadata creates a new ResponseMetadata
func NewResponseMetadata(count int, query string, filters map[string]string) *ResponseMetadata {
	return &ResponseMetadata{
		Count:   count,
		Query:   query,
		Filters: filters,
	}
}
