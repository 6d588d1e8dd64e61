package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. A comment with a nil ParentID is
// top-level; otherwise it is a reply, and its parent must itself be a
// top-level comment on the same post. Nesting never exceeds one level.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"not null" json:"content"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// Replies is derived from the parent_id column, so a deleted reply can
	// never linger in its parent's reply list.
	Replies   []Comment      `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
