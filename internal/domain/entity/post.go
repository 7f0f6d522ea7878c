package entity

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
	DeletedAt   gorm.DeletedAt
	AuthorID    uint    `gorm:"not null"`
	WorkspaceID *string `gorm:"type:uuid"`
	Title       string  `gorm:"not null"`
	Body        string
}

func (p *Post) TouchedAt() time.Time {
	if p.UpdatedAt != nil {
		return *p.UpdatedAt
	}
	return p.CreatedAt
}
