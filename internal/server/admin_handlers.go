// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"voxa/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminStats handles GET /api/admin/stats
func (s *Server) AdminStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// AdminListUsers handles GET /api/admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)

	users, err := s.adminService.ListUsers(c.Context(), page, pageSize)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// AdminListPosts handles GET /api/admin/posts
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)

	posts, err := s.adminService.ListPosts(c.Context(), page, pageSize)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// AdminUserLikes handles GET /api/admin/user-likes/:userId
func (s *Server) AdminUserLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	likes, err := s.adminService.UserLikes(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(likes)
}

// AdminUserFollowers handles GET /api/admin/user-followers/:userId
func (s *Server) AdminUserFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	graph, err := s.adminService.UserFollowGraph(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(graph)
}

// AdminUpdateRole handles PUT /api/admin/users/:id/role
func (s *Server) AdminUpdateRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.adminService.UpdateRole(c.Context(), id, req.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	requesterID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteUser(c.Context(), requesterID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// AdminDeletePost handles DELETE /api/admin/posts/:id
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeletePost(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}
