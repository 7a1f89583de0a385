package models

import (
	"time"
)

// User is a member of the service.
type User struct {
	ID       int64     `gorm:"primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Login    string    `gorm:"uniqueIndex;not null" json:"login"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
}

// Friendship is a directed edge: UserID follows FriendID. The reverse edge
// is a separate row.
type Friendship struct {
	UserID   int64 `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	FriendID int64 `gorm:"primaryKey;autoIncrement:false;index:idx_friend" json:"friendId"`
}
