// Package media uploads images to the hosted media service and deletes them.
package media

import (
	"context"
	"io"
)

// Asset is a stored image.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadInput carries one image file to store.
type UploadInput struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// Uploader stores and removes image assets.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
}
