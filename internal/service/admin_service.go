package service

import (
	"context"

	"voxa/internal/models"
	"voxa/internal/repository"
)

const recentActivityLimit = 5

type AdminService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository
}

// DashboardStats is the admin dashboard payload: global totals plus the most
// recent posts and signups.
type DashboardStats struct {
	Stats struct {
		TotalUsers    int64 `json:"total_users"`
		TotalPosts    int64 `json:"total_posts"`
		TotalComments int64 `json:"total_comments"`
		TotalLikes    int64 `json:"total_likes"`
	} `json:"stats"`
	RecentActivity struct {
		RecentPosts []*models.Post `json:"recent_posts"`
		RecentUsers []models.User  `json:"recent_users"`
	} `json:"recent_activity"`
}

// UserPage is a single page of the admin user listing.
type UserPage struct {
	Users       []models.User `json:"users"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int64         `json:"total"`
}

// FollowGraph holds both sides of a user's follow relationships.
type FollowGraph struct {
	Followers []models.User `json:"followers"`
	Following []models.User `json:"following"`
}

func NewAdminService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	followRepo repository.FollowRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Stats.TotalPosts, err = s.postRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Stats.TotalComments, err = s.commentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Stats.TotalLikes, err = s.likeRepo.Count(ctx); err != nil {
		return nil, err
	}

	if stats.RecentActivity.RecentPosts, err = s.postRepo.ListRecent(ctx, recentActivityLimit); err != nil {
		return nil, err
	}
	if stats.RecentActivity.RecentUsers, err = s.userRepo.ListRecent(ctx, recentActivityLimit); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, page, pageSize int) (*UserPage, error) {
	page, size := normalizePage(page, pageSize)

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}

	return &UserPage{
		Users:       users,
		TotalPages:  totalPages(total, size),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// ListPosts pages through every post regardless of status, for moderation.
func (s *AdminService) ListPosts(ctx context.Context, page, pageSize int) (*models.PostPage, error) {
	page, size := normalizePage(page, pageSize)

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListAll(ctx, size, (page-1)*size)
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

func (s *AdminService) UserLikes(ctx context.Context, userID uint) ([]models.Like, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []models.Like{}
	}
	return likes, nil
}

func (s *AdminService) UserFollowGraph(ctx context.Context, userID uint) (*FollowGraph, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	graph := &FollowGraph{}
	var err error
	if graph.Followers, err = s.followRepo.Followers(ctx, userID); err != nil {
		return nil, err
	}
	if graph.Following, err = s.followRepo.Following(ctx, userID); err != nil {
		return nil, err
	}
	if graph.Followers == nil {
		graph.Followers = []models.User{}
	}
	if graph.Following == nil {
		graph.Following = []models.User{}
	}
	return graph, nil
}

// DeleteUser removes the user and everything they own. Admins cannot delete
// their own account through this path.
func (s *AdminService) DeleteUser(ctx context.Context, requesterID, targetID uint) error {
	if requesterID == targetID {
		return models.NewValidationError("You cannot delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.userRepo.DeleteCascade(ctx, targetID)
}

// DeletePost removes any post with its comments and likes.
func (s *AdminService) DeletePost(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}
	return s.postRepo.DeleteCascade(ctx, postID)
}

// UpdateRole changes a user's role to User or Admin.
func (s *AdminService) UpdateRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	if role != string(models.RoleUser) && role != string(models.RoleAdmin) {
		return nil, models.NewValidationError("Invalid role")
	}
	if err := s.userRepo.UpdateRole(ctx, userID, models.Role(role)); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
