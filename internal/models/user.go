// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role controls access to the admin back-office.
type Role string

const (
	// RoleUser is the default role assigned at signup.
	RoleUser Role = "User"
	// RoleAdmin grants access to admin endpoints and moderation actions.
	RoleAdmin Role = "Admin"
)

// User represents a registered author or reader of the Voxa blog.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      Role           `gorm:"type:varchar(20);default:'User'" json:"role"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`

	// Derived from the follows table; never persisted on the user row.
	Followers []User `gorm:"-" json:"followers,omitempty"`
	Following []User `gorm:"-" json:"following,omitempty"`
	// PostsCount is computed at query time for profile responses.
	PostsCount int64 `gorm:"-" json:"posts_count,omitempty"`
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
