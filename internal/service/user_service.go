package service

import (
	"context"

	"voxa/internal/models"
	"voxa/internal/repository"
)

const userSearchLimit = 10

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type UpdateProfileInput struct {
	UserID uint
	Name   string
	Bio    string
	Avatar string
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GetProfile returns the user with their published-post count and the
// follower/following sets derived from the follow graph.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PostsCount, err = s.userRepo.CountPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Followers, err = s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Following, err = s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile patches name, bio and avatar; empty fields are left alone.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleFollow follows the target if not yet followed and unfollows
// otherwise, reporting the resulting state. Self-follow is rejected before
// any read or write.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	return s.followRepo.Toggle(ctx, followerID, targetID)
}

// SearchUsers finds users by name or email fragment.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	users, err := s.userRepo.Search(ctx, query, userSearchLimit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
