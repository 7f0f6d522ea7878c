package entity

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Plan struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	// UpdatedAt stays nil until the plan is explicitly edited; the activity feed
	// falls back to CreatedAt for never-touched plans.
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
	DeletedAt   gorm.DeletedAt
	OwnerID     uint    `gorm:"not null"`
	WorkspaceID *string `gorm:"type:uuid"`
	Name        string  `gorm:"not null"`
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Tags        pq.StringArray `gorm:"type:text[]"`
}

// TouchedAt is the feed ordering key: last update time, or creation time if the
// plan was never updated.
func (p *Plan) TouchedAt() time.Time {
	if p.UpdatedAt != nil {
		return *p.UpdatedAt
	}
	return p.CreatedAt
}

// ShareLink generates a shareable link to the plan.
func (p *Plan) ShareLink(baseURL string) string {
	return fmt.Sprintf("%s/plans/%s", baseURL, p.ID)
}
