// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"reunion/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository manages the directed follow edges of the social graph.
// Because a relationship is a single row guarded by a unique index, concurrent
// follow/unfollow calls for the same pair serialize at the database and the
// follower/following views derived from this table can never disagree.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) (models.FollowOutcome, error)
	Unfollow(ctx context.Context, followerID, followeeID uint) (models.FollowOutcome, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow records followerID following followeeID. The insert is a no-op when
// the edge already exists, so a duplicate request (or a concurrent race on the
// same pair) reports AlreadyFollowing instead of failing.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) (models.FollowOutcome, error) {
	edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
			DoNothing: true,
		}).
		Create(&edge)
	if result.Error != nil {
		return "", models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.AlreadyFollowing, nil
	}
	return models.Followed, nil
}

// Unfollow removes the edge; removing a non-existent edge reports NotFollowing.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) (models.FollowOutcome, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return "", models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NotFollowing, nil
	}
	return models.Unfollowed, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var edge models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followee_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followee_id").
		Where("f.follower_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
