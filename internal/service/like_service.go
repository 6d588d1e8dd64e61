package service

import (
	"context"

	"voxa/internal/models"
	"voxa/internal/repository"
)

type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
	}
}

// ToggleLike flips the caller's like on the post and reports the resulting
// state. Repeated calls alternate; two calls in a row always restore the
// original state, and the pair's unique index keeps duplicates impossible
// under racing requests.
func (s *LikeService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, err
	}
	return s.likeRepo.Toggle(ctx, userID, postID)
}

// IsLiked is a pure existence check against the like store.
func (s *LikeService) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	return s.likeRepo.IsLiked(ctx, userID, postID)
}

// ListLikes returns the post's likes newest first with the liking users'
// display identity.
func (s *LikeService) ListLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	likes, err := s.likeRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []models.Like{}
	}
	return likes, nil
}
