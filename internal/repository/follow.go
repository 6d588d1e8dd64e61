package repository

import (
	"context"

	"voxa/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations. A
// follow is one directed edge row; both users' follower/following sets are
// views over the same table, so the two sides cannot drift apart.
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followeeID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle follows the target if no edge exists and unfollows otherwise,
// returning the resulting state. The insert relies on the edge's unique
// index via ON CONFLICT DO NOTHING; two racing toggles cannot both insert,
// and each branch is a single statement, so no partial edge state exists.
func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return false, err
	}
	return false, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followee_id = ? AND users.deleted_at IS NULL", userID).
		Find(&users).Error
	return users, err
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followee_id").
		Where("f.follower_id = ? AND users.deleted_at IS NULL", userID).
		Find(&users).Error
	return users, err
}
