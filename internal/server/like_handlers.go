// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"voxa/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/likes/toggle
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		PostID uint `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post ID is required"))
	}

	liked, err := s.likeService.ToggleLike(ctx, req.PostID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// CheckLike handles GET /api/likes/check/:postId
func (s *Server) CheckLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.IsLiked(ctx, postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// GetPostLikes handles GET /api/likes/post/:postId
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	likes, err := s.likeService.ListLikes(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"likes": likes,
		"count": len(likes),
	})
}
