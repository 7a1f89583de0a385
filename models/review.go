package models

// Review is a user's written opinion of a film. Useful is never stored: it
// is the live sum of the review's votes and is filled in on read.
type Review struct {
	ID         int64  `gorm:"primaryKey" json:"reviewId"`
	FilmID     int64  `gorm:"index:idx_review_film;not null" json:"filmId"`
	UserID     int64  `gorm:"index:idx_review_user;not null" json:"userId"`
	IsPositive bool   `json:"isPositive"`
	Content    string `gorm:"size:350;not null" json:"content"`
	Useful     int    `gorm:"->;-:migration" json:"useful"`
}

// Vote values
const (
	VoteUseful  = 1
	VoteUseless = -1
)

// UsefulVote is one user's verdict on a review. The (ReviewID, UserID) pair
// is the primary key, so a second vote from the same user replaces the first.
type UsefulVote struct {
	ReviewID int64 `gorm:"primaryKey;autoIncrement:false" json:"reviewId"`
	UserID   int64 `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	Value    int   `gorm:"not null" json:"value"`
}

// IsValidVote reports whether v is an accepted vote value.
func IsValidVote(v int) bool {
	return v == VoteUseful || v == VoteUseless
}

// GetID returns the review ID
func (r Review) GetID() int64 {
	return r.ID
}
