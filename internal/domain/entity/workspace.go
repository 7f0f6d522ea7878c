package entity

import (
	"time"

	"gorm.io/gorm"
)

type Workspace struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
	OrganizationID string `gorm:"not null;type:uuid"`
	Name           string `gorm:"not null"`

	Organization Organization `gorm:"foreignKey:OrganizationID"`
}

type WorkspaceMember struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	WorkspaceID string `gorm:"not null;type:uuid;uniqueIndex:idx_workspace_member"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_workspace_member"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	User      User      `gorm:"foreignKey:UserID"`
}
