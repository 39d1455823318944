// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"reunion/internal/cache"
	"reunion/internal/models"
	"reunion/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListSummaries(ctx context.Context) ([]models.PostSummary, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) (models.LikeOutcome, error)
	Unlike(ctx context.Context, userID, postID uint) (models.LikeOutcome, error)
	AddComment(ctx context.Context, comment *models.Comment) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// CreatedAt is assigned by gorm at insert time, so the timestamp reflects
	// the creation call rather than process start.
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applyPostDetails adds subqueries to fetch counts in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count")
}

// ListSummaries returns every post in feed form: counts plus the ordered
// comment texts. An empty store is reported as not found, matching the
// behavior callers of the listing endpoint already depend on.
func (r *postRepository) ListSummaries(ctx context.Context) ([]models.PostSummary, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at ASC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(posts) == 0 {
		return nil, &models.AppError{Code: "NOT_FOUND", Message: "No posts found"}
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for _, p := range posts {
		texts := make([]string, 0, len(p.Comments))
		for _, c := range p.Comments {
			texts = append(texts, c.Text)
		}
		summaries = append(summaries, models.PostSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			Comments:    texts,
			LikesCount:  p.LikesCount,
		})
	}
	return summaries, nil
}

// Delete removes the post together with its owned comments and likes in one
// transaction, the relational analog of whole-document deletion.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	span, ctx := observability.NewSpan(ctx, "repository.post.delete")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		span.SetError(err)
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// Like records a like. The unique (user_id, post_id) index makes the insert a
// no-op for duplicates, so concurrent double-likes resolve to AlreadyLiked
// rather than an error.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) (models.LikeOutcome, error) {
	like := models.Like{UserID: userID, PostID: postID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		return "", models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, postID)
	if result.RowsAffected == 0 {
		return models.AlreadyLiked, nil
	}
	return models.Liked, nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) (models.LikeOutcome, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return "", models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, postID)
	if result.RowsAffected == 0 {
		return models.NotLiked, nil
	}
	return models.Unliked, nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}
