package models

import (
	"time"

	"gorm.io/gorm"
)

// Post status values. Only published posts are visible on public listings.
const (
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"
)

// Tags is a set of free-form tag strings stored as a jsonb column.
type Tags []string

// Post represents a blog post in the Voxa application.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"not null" json:"title"`
	Content       string `gorm:"not null" json:"content"`
	Category      string `gorm:"not null;default:'General'" json:"category"`
	Tags          Tags   `gorm:"type:jsonb;serializer:json" json:"tags"`
	FeaturedImage string `json:"featured_image"`
	Status        string `gorm:"type:varchar(20);not null;default:'published'" json:"status"`
	Views         int64  `gorm:"not null;default:0" json:"views"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time from the likes table
	LikesCount int64 `gorm:"-" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time from the comments table
	CommentsCount int64 `gorm:"-" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"-" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostPage is a single page of a filtered post listing.
type PostPage struct {
	Posts       []*Post `json:"posts"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Total       int64   `json:"total"`
}

// PostFilter narrows a post listing. Zero-valued fields do not restrict.
// All set fields combine with AND semantics.
type PostFilter struct {
	Search   string
	Category string
	Tag      string
	AuthorID uint
}
