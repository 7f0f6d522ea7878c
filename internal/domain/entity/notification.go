package entity

import "time"

type ReminderType string

const (
	ReminderTypeDay  ReminderType = "day"
	ReminderTypeHour ReminderType = "hour"
)

// SystemNotification is a persisted per-user notification with dismissal state.
type SystemNotification struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatedAt   time.Time
	UserID      uint   `gorm:"not null"`
	Type        string `gorm:"not null"`
	Title       string
	Content     string
	DismissedAt *time.Time

	User User `gorm:"foreignKey:UserID"`
}

// PlanReminder records that a reminder has been sent to a user, so the
// scheduler never sends the same reminder twice.
type PlanReminder struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatedAt time.Time
	PlanID    string       `gorm:"not null;type:uuid"`
	UserID    uint         `gorm:"not null"`
	Type      ReminderType `gorm:"not null"`

	Plan Plan `gorm:"foreignKey:PlanID"`
	User User `gorm:"foreignKey:UserID"`
}
