package entity

import (
	"time"

	"gorm.io/gorm"
)

// Connection represents one live gateway session. UserID stays nil until the
// client identifies itself over its first ping; UpdatedAt is refreshed on every
// heartbeat and doubles as the broadcast freshness marker.
//
// The unique index is partial: it only guards live rows, so a connection id
// freed by a disconnect (soft delete) can be registered again.
type Connection struct {
	ID           string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
	ConnectionID string `gorm:"not null;uniqueIndex:idx_connections_live,where:deleted_at IS NULL"`
	UserID       *uint
}
