package postgres

import (
	"context"
	"time"

	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

// NotificationStorage persists system notifications and plan reminder records.
type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

func (s *NotificationStorage) Create(ctx context.Context, notification *entity.SystemNotification) (*entity.SystemNotification, error) {
	err := s.db.WithContext(ctx).Create(&notification).Error
	return notification, err
}

// GetActiveByUserID returns the user's notifications that have not been dismissed.
func (s *NotificationStorage) GetActiveByUserID(ctx context.Context, userID uint) ([]entity.SystemNotification, error) {
	var notifications []entity.SystemNotification
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND dismissed_at IS NULL", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// Dismiss marks a single notification as dismissed.
func (s *NotificationStorage) Dismiss(ctx context.Context, id string, userID uint) error {
	return s.db.WithContext(ctx).Model(&entity.SystemNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("dismissed_at", time.Now()).Error
}

// DismissAll marks all of the user's active notifications as dismissed.
func (s *NotificationStorage) DismissAll(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&entity.SystemNotification{}).
		Where("user_id = ? AND dismissed_at IS NULL", userID).
		Update("dismissed_at", time.Now()).Error
}

// CreateReminder records a sent plan reminder.
func (s *NotificationStorage) CreateReminder(ctx context.Context, reminder *entity.PlanReminder) error {
	return s.db.WithContext(ctx).Create(reminder).Error
}

// GetUnremindedMembers returns the workspace members that have not yet received
// a reminder of the given type for the plan.
func (s *NotificationStorage) GetUnremindedMembers(ctx context.Context, plan entity.Plan, reminderType entity.ReminderType) ([]entity.WorkspaceMember, error) {
	var members []entity.WorkspaceMember

	err := s.db.WithContext(ctx).
		Joins("LEFT JOIN plan_reminders ON plan_reminders.user_id = workspace_members.user_id AND plan_reminders.plan_id = ? AND plan_reminders.type = ?", plan.ID, reminderType).
		Where("workspace_members.workspace_id = ? AND plan_reminders.id IS NULL", plan.WorkspaceID).
		Find(&members).Error

	return members, err
}
