// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"voxa/internal/media"
	"voxa/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadPostImage handles POST /api/upload/post-image
func (s *Server) UploadPostImage(c *fiber.Ctx) error {
	return s.uploadImage(c, "image")
}

// UploadProfileImage handles POST /api/upload/profile-image
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	return s.uploadImage(c, "avatar")
}

const maxBatchImages = 5

// UploadPostImages handles POST /api/upload/post-images. Up to five images
// for inline post content go up in one request.
func (s *Server) UploadPostImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No image files provided"))
	}

	files := form.File["images"]
	if len(files) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No image files provided"))
	}
	if len(files) > maxBatchImages {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A maximum of 5 images can be uploaded at once"))
	}

	images := make([]fiber.Map, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}

		asset, err := s.uploader.Upload(c.Context(), media.UploadInput{
			FileName:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Body:        src,
		})
		_ = src.Close()
		if err != nil {
			return respondServiceError(c, err)
		}

		images = append(images, fiber.Map{
			"image_url": asset.URL,
			"public_id": asset.PublicID,
		})
	}

	return c.JSON(fiber.Map{"images": images})
}

func (s *Server) uploadImage(c *fiber.Ctx, field string) error {
	file, err := c.FormFile(field)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	asset, err := s.uploader.Upload(c.Context(), media.UploadInput{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Body:        src,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"image_url": asset.URL,
		"public_id": asset.PublicID,
	})
}

// DeleteImage handles DELETE /api/upload/image/:publicId
func (s *Server) DeleteImage(c *fiber.Ctx) error {
	publicID, err := unescapeParam(c, "publicId")
	if err != nil || publicID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid public ID"))
	}

	if err := s.uploader.Delete(c.Context(), publicID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Image deleted successfully"})
}
