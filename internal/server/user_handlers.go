// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"voxa/internal/models"
	"voxa/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name   string `json:"name"`
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// ToggleFollow handles POST /api/users/follow/:id
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.userService.ToggleFollow(ctx, userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"is_following": following})
}

// SearchUsers handles GET /api/users/search/:query
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	ctx := c.Context()

	query, err := unescapeParam(c, "query")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid search query"))
	}

	users, err := s.userService.SearchUsers(ctx, query)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}
