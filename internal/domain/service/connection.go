package service

import (
	"context"
	"errors"
	"time"

	"github.com/planloop/planloop/internal/domain/common/errorz"
	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type ConnectionStorage interface {
	Create(ctx context.Context, connection *entity.Connection) (*entity.Connection, error)
	GetByConnectionID(ctx context.Context, connectionID string) (*entity.Connection, error)
	SetUser(ctx context.Context, connectionID string, userID uint) (*entity.Connection, error)
	DeleteByConnectionID(ctx context.Context, connectionID string) (*entity.Connection, error)
	GetLatestByUserID(ctx context.Context, userID uint) (*entity.Connection, error)
	GetFresh(ctx context.Context, since time.Time) ([]entity.Connection, error)
	DeleteAll(ctx context.Context) ([]entity.Connection, error)
}

// ConnectionService is the gateway connection registry: it tracks which
// connection ids are live and which user each one belongs to.
type ConnectionService struct {
	storage ConnectionStorage
}

func NewConnectionService(storage ConnectionStorage) *ConnectionService {
	return &ConnectionService{
		storage: storage,
	}
}

// Connect registers a fresh gateway connection with no user attached yet. The
// gateway guarantees connection ids are unique per live session, so hitting an
// existing row means the id was reused while still registered; overwriting
// would be unsafe, so it is surfaced as an error.
func (s *ConnectionService) Connect(ctx context.Context, connectionID string) (*entity.Connection, error) {
	_, err := s.storage.GetByConnectionID(ctx, connectionID)
	if err == nil {
		return nil, errorz.ErrConnectionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.storage.Create(ctx, &entity.Connection{
		ConnectionID: connectionID,
	})
}

// Identify attaches a user to the connection and refreshes its heartbeat
// marker. Safe to call repeatedly with the same arguments.
func (s *ConnectionService) Identify(ctx context.Context, connectionID string, userID uint) (*entity.Connection, error) {
	connection, err := s.storage.SetUser(ctx, connectionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrConnectionNotFound
		}
		return nil, err
	}
	return connection, nil
}

// Disconnect removes the connection and returns the removed row, or (nil, nil)
// when the connection was already gone.
func (s *ConnectionService) Disconnect(ctx context.Context, connectionID string) (*entity.Connection, error) {
	return s.storage.DeleteByConnectionID(ctx, connectionID)
}

// Lookup returns the most recently associated connection id for a user, or ""
// when the user has no live connection.
func (s *ConnectionService) Lookup(ctx context.Context, userID uint) (string, error) {
	connection, err := s.storage.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return connection.ConnectionID, nil
}

// RevokeAll drops every registered connection and returns the revoked rows.
func (s *ConnectionService) RevokeAll(ctx context.Context) ([]entity.Connection, error) {
	return s.storage.DeleteAll(ctx)
}
