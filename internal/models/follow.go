package models

import (
	"time"
)

// Follow is a directed edge in the social graph: the follower follows the
// followee. Storing the relationship as a single edge row, rather than as
// mirrored lists on both user documents, makes "A follows B" one fact. The
// follower/following sets shown on a profile are derived by querying this
// table, so the two sides can never drift apart under concurrent writes.
// The combination of FollowerID and FolloweeID must be unique.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

// FollowOutcome reports the result of a follow or unfollow mutation.
type FollowOutcome string

const (
	// Followed indicates a new edge was created.
	Followed FollowOutcome = "followed"
	// AlreadyFollowing indicates the edge already existed; nothing changed.
	AlreadyFollowing FollowOutcome = "already_following"
	// Unfollowed indicates an existing edge was removed.
	Unfollowed FollowOutcome = "unfollowed"
	// NotFollowing indicates there was no edge to remove; nothing changed.
	NotFollowing FollowOutcome = "not_following"
)
