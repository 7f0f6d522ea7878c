package entity

import (
	"time"

	"gorm.io/gorm"
)

type Organization struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
	Name      string `gorm:"not null"`
	OwnerID   uint   `gorm:"not null"`
}

type OrganizationMember struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	OrganizationID string `gorm:"not null;type:uuid;uniqueIndex:idx_org_member"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_org_member"`
	Role           string `gorm:"not null;default:member"`

	Organization Organization `gorm:"foreignKey:OrganizationID"`
	User         User         `gorm:"foreignKey:UserID"`
}
