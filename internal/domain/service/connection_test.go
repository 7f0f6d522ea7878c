package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/planloop/planloop/internal/domain/common/errorz"
	"github.com/planloop/planloop/internal/domain/entity"
)

// fakeConnectionStorage mirrors the postgres connection storage semantics in
// memory, including its idempotent delete.
type fakeConnectionStorage struct {
	connections map[string]*entity.Connection
}

func newFakeConnectionStorage() *fakeConnectionStorage {
	return &fakeConnectionStorage{connections: make(map[string]*entity.Connection)}
}

func (f *fakeConnectionStorage) Create(_ context.Context, connection *entity.Connection) (*entity.Connection, error) {
	now := time.Now()
	connection.CreatedAt = now
	connection.UpdatedAt = now
	f.connections[connection.ConnectionID] = connection
	return connection, nil
}

func (f *fakeConnectionStorage) GetByConnectionID(_ context.Context, connectionID string) (*entity.Connection, error) {
	connection, ok := f.connections[connectionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return connection, nil
}

func (f *fakeConnectionStorage) SetUser(_ context.Context, connectionID string, userID uint) (*entity.Connection, error) {
	connection, ok := f.connections[connectionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	connection.UserID = &userID
	connection.UpdatedAt = time.Now()
	return connection, nil
}

func (f *fakeConnectionStorage) DeleteByConnectionID(_ context.Context, connectionID string) (*entity.Connection, error) {
	connection, ok := f.connections[connectionID]
	if !ok {
		return nil, nil
	}
	delete(f.connections, connectionID)
	return connection, nil
}

func (f *fakeConnectionStorage) GetLatestByUserID(_ context.Context, userID uint) (*entity.Connection, error) {
	var latest *entity.Connection
	for _, connection := range f.connections {
		if connection.UserID == nil || *connection.UserID != userID {
			continue
		}
		if latest == nil || connection.UpdatedAt.After(latest.UpdatedAt) {
			latest = connection
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (f *fakeConnectionStorage) GetFresh(_ context.Context, since time.Time) ([]entity.Connection, error) {
	var fresh []entity.Connection
	for _, connection := range f.connections {
		if connection.UpdatedAt.Before(since) {
			continue
		}
		fresh = append(fresh, *connection)
	}
	return fresh, nil
}

func (f *fakeConnectionStorage) DeleteAll(_ context.Context) ([]entity.Connection, error) {
	var deleted []entity.Connection
	for id, connection := range f.connections {
		deleted = append(deleted, *connection)
		delete(f.connections, id)
	}
	return deleted, nil
}

func TestConnectionService_Connect(t *testing.T) {
	storage := newFakeConnectionStorage()
	connections := NewConnectionService(storage)
	ctx := context.Background()

	connection, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)
	assert.Equal(t, "conn-1", connection.ConnectionID)
	assert.Nil(t, connection.UserID)
}

func TestConnectionService_Connect_DuplicateID(t *testing.T) {
	storage := newFakeConnectionStorage()
	connections := NewConnectionService(storage)
	ctx := context.Background()

	_, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)

	_, err = connections.Connect(ctx, "conn-1")
	assert.ErrorIs(t, err, errorz.ErrConnectionExists)
}

func TestConnectionService_Identify_Repeatable(t *testing.T) {
	storage := newFakeConnectionStorage()
	connections := NewConnectionService(storage)
	ctx := context.Background()

	_, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)

	// The client retries pings until it sees a pong, so the same identify
	// must succeed any number of times, each one advancing the heartbeat
	// marker.
	var lastHeartbeat time.Time
	for i := 0; i < 3; i++ {
		connection, errIdentify := connections.Identify(ctx, "conn-1", 42)
		require.NoError(t, errIdentify)
		require.NotNil(t, connection.UserID)
		assert.Equal(t, uint(42), *connection.UserID)
		assert.False(t, connection.UpdatedAt.Before(lastHeartbeat), "heartbeat marker must never move backwards")
		lastHeartbeat = connection.UpdatedAt
	}
}

func TestConnectionService_Identify_UnknownConnection(t *testing.T) {
	connections := NewConnectionService(newFakeConnectionStorage())

	_, err := connections.Identify(context.Background(), "missing", 42)
	assert.ErrorIs(t, err, errorz.ErrConnectionNotFound)
}

func TestConnectionService_Disconnect_Idempotent(t *testing.T) {
	storage := newFakeConnectionStorage()
	connections := NewConnectionService(storage)
	ctx := context.Background()

	_, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)

	removed, err := connections.Disconnect(ctx, "conn-1")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "conn-1", removed.ConnectionID)

	// A second disconnect for the same id is not an error.
	removed, err = connections.Disconnect(ctx, "conn-1")
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestConnectionService_ReconnectAfterDisconnect(t *testing.T) {
	storage := newFakeConnectionStorage()
	connections := NewConnectionService(storage)
	ctx := context.Background()

	_, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)
	_, err = connections.Disconnect(ctx, "conn-1")
	require.NoError(t, err)

	// A disconnect frees the id; only live registrations block reuse.
	connection, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)
	assert.Equal(t, "conn-1", connection.ConnectionID)
	assert.Nil(t, connection.UserID)
}

func TestConnectionService_Lookup(t *testing.T) {
	storage := newFakeConnectionStorage()
	connections := NewConnectionService(storage)
	ctx := context.Background()

	connectionID, err := connections.Lookup(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, connectionID)

	_, err = connections.Connect(ctx, "conn-1")
	require.NoError(t, err)
	_, err = connections.Identify(ctx, "conn-1", 42)
	require.NoError(t, err)

	connectionID, err = connections.Lookup(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "conn-1", connectionID)
}

func TestConnectionService_RevokeAll(t *testing.T) {
	storage := newFakeConnectionStorage()
	connections := NewConnectionService(storage)
	ctx := context.Background()

	for _, id := range []string{"conn-1", "conn-2", "conn-3"} {
		_, err := connections.Connect(ctx, id)
		require.NoError(t, err)
	}

	revoked, err := connections.RevokeAll(ctx)
	require.NoError(t, err)
	assert.Len(t, revoked, 3)

	remaining, err := storage.GetFresh(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
