// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the Reunion application. The author (UserID) is
// fixed at creation and is the only user allowed to delete the post.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->;-:migration" json:"comments_count"`
	Comments      []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostSummary is the flattened feed representation returned by the
// all-posts listing: counts and comment texts instead of full relations.
type PostSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"desc"`
	CreatedAt   time.Time `json:"created_at"`
	Comments    []string  `json:"comments"`
	LikesCount  int       `json:"likes"`
}

// LikeOutcome reports the result of a like or unlike mutation.
type LikeOutcome string

const (
	// Liked indicates a new like was recorded.
	Liked LikeOutcome = "liked"
	// AlreadyLiked indicates the user had already liked the post; nothing changed.
	AlreadyLiked LikeOutcome = "already_liked"
	// Unliked indicates an existing like was removed.
	Unliked LikeOutcome = "unliked"
	// NotLiked indicates there was no like to remove; nothing changed.
	NotLiked LikeOutcome = "not_liked"
)
