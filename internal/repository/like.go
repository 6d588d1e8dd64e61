package repository

import (
	"context"

	"voxa/internal/cache"
	"voxa/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines interface for like operations. The likes table is
// the single source of truth for like state; there is no denormalized
// counter to keep in sync.
type LikeRepository interface {
	Toggle(ctx context.Context, userID, postID uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	ListByPost(ctx context.Context, postID uint) ([]models.Like, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Like, error)
	Count(ctx context.Context) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle inserts the (user, post) like if absent and deletes it if present,
// returning the resulting state. The insert uses ON CONFLICT DO NOTHING
// against the pair's unique index, so two racing toggles can never both
// create a row; whichever insert loses the race falls through to the delete
// branch. Each branch is a single statement, so the toggle is all-or-nothing.
func (r *likeRepository) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		cache.Invalidate(ctx, cache.PostKey(postID))
		return true, nil
	}

	// Already liked: remove the row.
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return false, err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return false, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) ListByPost(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Count(&count).Error
	return count, err
}
