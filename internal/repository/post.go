package repository

import (
	"context"
	"encoding/json"
	"errors"

	"voxa/internal/cache"
	"voxa/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Count(ctx context.Context, filter models.PostFilter) (int64, error)
	ListByUser(ctx context.Context, userID uint, currentUserID uint) ([]*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Post, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	DeleteCascade(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
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
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&post, id).Error
	}

	var err error
	if currentUserID == 0 {
		// Anonymous reads share one cache entry; liked is always false here.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

// applyFilter appends WHERE clauses for each set filter field; all fields
// combine with AND semantics. Only published posts are ever eligible.
func (r *postRepository) applyFilter(db *gorm.DB, f models.PostFilter) *gorm.DB {
	db = db.Where("posts.status = ?", models.PostStatusPublished)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		db = db.Where("posts.title ILIKE ? OR posts.content ILIKE ? OR posts.tags::text ILIKE ?", like, like, like)
	}
	if f.Category != "" && f.Category != "all" {
		db = db.Where("posts.category = ?", f.Category)
	}
	if f.Tag != "" {
		// jsonb containment: tags @> '["travel"]'
		needle, _ := json.Marshal(models.Tags{f.Tag})
		db = db.Where("posts.tags @> ?", string(needle))
	}
	if f.AuthorID != 0 {
		db = db.Where("posts.user_id = ?", f.AuthorID)
	}
	return db
}

func (r *postRepository) List(ctx context.Context, filter models.PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	base := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User")
	err := r.applyFilter(base, filter).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Count(ctx context.Context, filter models.PostFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&count).Error
	return count, err
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, currentUserID uint) ([]*models.Post, error) {
	return r.List(ctx, models.PostFilter{AuthorID: userID}, -1, 0, currentUserID)
}

// ListAll returns posts regardless of status, for the admin back-office.
func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), 0).
		Preload("User").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	return r.ListAll(ctx, limit, 0)
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	return nil
}

// DeleteCascade removes the post together with its comments and likes in one
// transaction, so a storage failure deletes nothing.
func (r *postRepository) DeleteCascade(ctx context.Context, id uint) error {
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
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	return nil
}

// IncrementViews bumps the view counter with a single SQL expression. Racing
// increments may be lost under contention; views are a display metric, not a
// correctness-critical field.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(id))
	}
	return err
}
