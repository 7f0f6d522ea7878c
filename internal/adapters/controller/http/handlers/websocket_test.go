package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planloop/planloop/internal/adapters/gateway"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/internal/domain/service"
	"github.com/planloop/planloop/pkg/logger/types"
)

type memoryConnectionStorage struct {
	connections map[string]*entity.Connection
}

func newMemoryConnectionStorage() *memoryConnectionStorage {
	return &memoryConnectionStorage{connections: make(map[string]*entity.Connection)}
}

func (m *memoryConnectionStorage) Create(_ context.Context, connection *entity.Connection) (*entity.Connection, error) {
	connection.UpdatedAt = time.Now()
	m.connections[connection.ConnectionID] = connection
	return connection, nil
}

func (m *memoryConnectionStorage) GetByConnectionID(_ context.Context, connectionID string) (*entity.Connection, error) {
	connection, ok := m.connections[connectionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return connection, nil
}

func (m *memoryConnectionStorage) SetUser(_ context.Context, connectionID string, userID uint) (*entity.Connection, error) {
	connection, ok := m.connections[connectionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	connection.UserID = &userID
	connection.UpdatedAt = time.Now()
	return connection, nil
}

func (m *memoryConnectionStorage) DeleteByConnectionID(_ context.Context, connectionID string) (*entity.Connection, error) {
	connection, ok := m.connections[connectionID]
	if !ok {
		return nil, nil
	}
	delete(m.connections, connectionID)
	return connection, nil
}

func (m *memoryConnectionStorage) GetLatestByUserID(_ context.Context, _ uint) (*entity.Connection, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryConnectionStorage) GetFresh(_ context.Context, _ time.Time) ([]entity.Connection, error) {
	var fresh []entity.Connection
	for _, connection := range m.connections {
		fresh = append(fresh, *connection)
	}
	return fresh, nil
}

func (m *memoryConnectionStorage) DeleteAll(_ context.Context) ([]entity.Connection, error) {
	var deleted []entity.Connection
	for id, connection := range m.connections {
		deleted = append(deleted, *connection)
		delete(m.connections, id)
	}
	return deleted, nil
}

type noMembers struct{}

func (noMembers) GetMembers(_ context.Context, _ string) ([]entity.WorkspaceMember, error) {
	return nil, nil
}

func TestWebsocketHandler_RevokeAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	storage := newMemoryConnectionStorage()
	hub := gateway.NewHub()
	testLogger := &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
	connections := service.NewConnectionService(storage)
	notify := service.NewNotifyService(hub, storage, noMembers{}, testLogger)
	handler := NewWebsocketHandler(hub, connections, notify, testLogger)

	ctx := context.Background()
	_, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)
	_, err = connections.Connect(ctx, "conn-2")
	require.NoError(t, err)
	_, err = connections.Identify(ctx, "conn-1", 7)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/websockets/revoke/all", nil)

	handler.RevokeAll(c)
	require.Equal(t, http.StatusOK, recorder.Code)

	// The response lists each revoked connection with its bound user.
	var revoked []struct {
		ID     string `json:"id"`
		UserID *uint  `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &revoked))
	require.Len(t, revoked, 2)

	byID := make(map[string]*uint, len(revoked))
	for _, connection := range revoked {
		byID[connection.ID] = connection.UserID
	}
	require.Contains(t, byID, "conn-1")
	require.Contains(t, byID, "conn-2")
	require.NotNil(t, byID["conn-1"])
	assert.Equal(t, uint(7), *byID["conn-1"])
	assert.Nil(t, byID["conn-2"], "an unidentified connection reports no user")

	// The registry is empty afterwards.
	remaining, err := storage.GetFresh(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
