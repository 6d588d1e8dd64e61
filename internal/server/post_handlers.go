// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"voxa/internal/models"
	"voxa/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts with pagination, search, and filters.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page, pageSize := parsePage(c)
	userID, _ := s.optionalUserID(c)

	var authorID uint
	if raw := c.QueryInt("author", 0); raw > 0 {
		authorID = uint(raw)
	}

	result, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		Filter: models.PostFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
			AuthorID: authorID,
		},
		Page:          page,
		PageSize:      pageSize,
		CurrentUserID: userID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(ctx, id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /api/posts/user/:userId
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListUserPosts(ctx, userID, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title         string      `json:"title"`
		Content       string      `json:"content"`
		Category      string      `json:"category"`
		Tags          models.Tags `json:"tags"`
		FeaturedImage string      `json:"featured_image"`
		Status        string      `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		Category:      req.Category,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		Status:        req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	// The service already re-reads the post with its author preloaded.
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title         string      `json:"title"`
		Content       string      `json:"content"`
		Category      string      `json:"category"`
		Tags          models.Tags `json:"tags"`
		FeaturedImage string      `json:"featured_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:        userID,
		PostID:        id,
		Title:         req.Title,
		Content:       req.Content,
		Category:      req.Category,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, id, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}
