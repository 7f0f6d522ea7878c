package entity

import (
	"time"

	"gorm.io/gorm"
)

type CommentParent string

const (
	CommentParentPlan CommentParent = "plan"
	CommentParentPost CommentParent = "post"
)

type Comment struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
	AuthorID   uint          `gorm:"not null"`
	ParentType CommentParent `gorm:"not null"`
	ParentID   string        `gorm:"not null;type:uuid"`
	Body       string        `gorm:"not null"`

	Author User `gorm:"foreignKey:AuthorID"`
}
