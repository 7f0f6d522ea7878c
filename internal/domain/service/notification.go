package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type NotificationStorage interface {
	Create(ctx context.Context, notification *entity.SystemNotification) (*entity.SystemNotification, error)
	GetActiveByUserID(ctx context.Context, userID uint) ([]entity.SystemNotification, error)
	Dismiss(ctx context.Context, id string, userID uint) error
	DismissAll(ctx context.Context, userID uint) error
}

type notificationConnectionStorage interface {
	GetLatestByUserID(ctx context.Context, userID uint) (*entity.Connection, error)
}

type deliverer interface {
	Deliver(ctx context.Context, payload interface{}, connectionID string)
}

// NotificationService persists per-user notifications and pushes them to the
// user's live connection when there is one.
type NotificationService struct {
	storage     NotificationStorage
	connections notificationConnectionStorage
	deliverer   deliverer
}

func NewNotificationService(storage NotificationStorage, connections notificationConnectionStorage, deliverer deliverer) *NotificationService {
	return &NotificationService{
		storage:     storage,
		connections: connections,
		deliverer:   deliverer,
	}
}

// Notify persists the notification and delivers it to the user's connection if
// one is live. A missing connection is not an error.
func (s *NotificationService) Notify(ctx context.Context, userID uint, notifyType, title, content string) (*entity.SystemNotification, error) {
	notification, err := s.storage.Create(ctx, &entity.SystemNotification{
		UserID:  userID,
		Type:    notifyType,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	connection, err := s.connections.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification, nil
		}
		return notification, err
	}

	s.deliverer.Deliver(ctx, dto.Notify{
		ID:      uuid.NewString(),
		Type:    notifyType,
		Title:   title,
		Content: content,
	}, connection.ConnectionID)

	return notification, nil
}

func (s *NotificationService) GetActive(ctx context.Context, userID uint) ([]entity.SystemNotification, error) {
	return s.storage.GetActiveByUserID(ctx, userID)
}

func (s *NotificationService) Dismiss(ctx context.Context, id string, userID uint) error {
	return s.storage.Dismiss(ctx, id, userID)
}

func (s *NotificationService) DismissAll(ctx context.Context, userID uint) error {
	return s.storage.DismissAll(ctx, userID)
}
