package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type ConnectionStorage struct {
	db *gorm.DB
}

func NewConnectionStorage(db *gorm.DB) *ConnectionStorage {
	return &ConnectionStorage{
		db: db,
	}
}

func (s *ConnectionStorage) Create(ctx context.Context, connection *entity.Connection) (*entity.Connection, error) {
	err := s.db.WithContext(ctx).Create(&connection).Error
	return connection, err
}

func (s *ConnectionStorage) GetByConnectionID(ctx context.Context, connectionID string) (*entity.Connection, error) {
	var connection entity.Connection
	err := s.db.WithContext(ctx).Where("connection_id = ?", connectionID).First(&connection).Error
	return &connection, err
}

// SetUser attaches a user to the connection and refreshes its heartbeat marker.
func (s *ConnectionStorage) SetUser(ctx context.Context, connectionID string, userID uint) (*entity.Connection, error) {
	connection, err := s.GetByConnectionID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	connection.UserID = &userID
	connection.UpdatedAt = time.Now()
	err = s.db.WithContext(ctx).Save(&connection).Error
	return connection, err
}

// DeleteByConnectionID deletes the row for a gateway connection and returns it.
// Returns (nil, nil) when the row is already gone, so disconnect stays idempotent.
func (s *ConnectionStorage) DeleteByConnectionID(ctx context.Context, connectionID string) (*entity.Connection, error) {
	connection, err := s.GetByConnectionID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	err = s.db.WithContext(ctx).Where("connection_id = ?", connectionID).Delete(&entity.Connection{}).Error
	return connection, err
}

// GetLatestByUserID returns the most recently touched connection for a user.
func (s *ConnectionStorage) GetLatestByUserID(ctx context.Context, userID uint) (*entity.Connection, error) {
	var connection entity.Connection
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&connection).Error
	return &connection, err
}

// GetFresh returns the connections whose heartbeat marker is at or after since.
func (s *ConnectionStorage) GetFresh(ctx context.Context, since time.Time) ([]entity.Connection, error) {
	var connections []entity.Connection
	err := s.db.WithContext(ctx).Where("updated_at >= ?", since).Find(&connections).Error
	return connections, err
}

// DeleteAll deletes every connection row and returns the deleted rows.
func (s *ConnectionStorage) DeleteAll(ctx context.Context) ([]entity.Connection, error) {
	var connections []entity.Connection
	err := s.db.WithContext(ctx).Find(&connections).Error
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Connection{}).Error
	return connections, err
}
