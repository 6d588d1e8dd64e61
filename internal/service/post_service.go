// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"voxa/internal/models"
	"voxa/internal/repository"
)

const (
	// DefaultPageSize is the page size used when the caller does not ask
	// for one.
	DefaultPageSize = 10
	maxPageSize     = 100

	maxTitleLen   = 300
	maxContentLen = 50000
)

type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID        uint
	Title         string
	Content       string
	Category      string
	Tags          models.Tags
	FeaturedImage string
	Status        string
}

type UpdatePostInput struct {
	UserID        uint
	PostID        uint
	Title         string
	Content       string
	Category      string
	Tags          models.Tags
	FeaturedImage string
}

type ListPostsInput struct {
	Filter        models.PostFilter
	Page          int
	PageSize      int
	CurrentUserID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
	}
}

// normalizePage clamps page and size to sane values: pages are 1-indexed and
// sizes bounded above to keep a single query cheap.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// totalPages computes ceil(total/size).
func totalPages(total int64, size int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// ListPosts returns one page of published posts matching the filter, newest
// first, each annotated with live-computed comment and like counts. A page
// beyond the last one yields an empty item set, not an error.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.PostPage, error) {
	page, size := normalizePage(in.Page, in.PageSize)

	total, err := s.postRepo.Count(ctx, in.Filter)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, in.Filter, size, (page-1)*size, in.CurrentUserID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &models.PostPage{
		Posts:       posts,
		TotalPages:  totalPages(total, size),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// GetPost fetches a post detail and counts one view. The increment is a
// single SQL expression with no dedup by viewer.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, postID); err != nil {
		return nil, err
	}
	post.Views++

	return post, nil
}

func (s *PostService) ListUserPosts(ctx context.Context, userID, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID, currentUserID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	category := in.Category
	if category == "" {
		category = "General"
	}
	status := in.Status
	if status == "" {
		status = models.PostStatusPublished
	}
	if status != models.PostStatusPublished && status != models.PostStatusDraft {
		return nil, models.NewValidationError("Invalid status")
	}

	tags := in.Tags
	if tags == nil {
		tags = models.Tags{}
	}

	post := &models.Post{
		Title:         in.Title,
		Content:       in.Content,
		Category:      category,
		Tags:          tags,
		FeaturedImage: in.FeaturedImage,
		Status:        status,
		UserID:        in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// UpdatePost patches the given fields. Only the post's author may update it.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}
	if in.Category != "" {
		post.Category = in.Category
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.FeaturedImage != "" {
		post.FeaturedImage = in.FeaturedImage
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// DeletePost removes the post and cascades to its comments and likes. The
// post's author and admins may delete it.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}

	if post.UserID != requesterID {
		admin, err := s.requesterIsAdmin(ctx, requesterID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.DeleteCascade(ctx, postID)
}

func (s *PostService) requesterIsAdmin(ctx context.Context, userID uint) (bool, error) {
	if s.isAdmin == nil {
		return false, nil
	}
	return s.isAdmin(ctx, userID)
}
