package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/pkg/logger/types"
)

// fakeGateway records every posted payload and fails deliveries to the
// connection ids listed in failing.
type fakeGateway struct {
	posted  map[string][][]byte
	failing map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		posted:  make(map[string][][]byte),
		failing: make(map[string]bool),
	}
}

func (f *fakeGateway) PostToConnection(_ context.Context, connectionID string, data []byte) error {
	if f.failing[connectionID] {
		return errors.New("connection is gone")
	}
	f.posted[connectionID] = append(f.posted[connectionID], data)
	return nil
}

type fakeWorkspaceMembers struct {
	members map[string][]entity.WorkspaceMember
}

func (f *fakeWorkspaceMembers) GetMembers(_ context.Context, workspaceID string) ([]entity.WorkspaceMember, error) {
	return f.members[workspaceID], nil
}

func nopLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newNotifyFixture() (*NotifyService, *fakeConnectionStorage, *fakeGateway, *fakeWorkspaceMembers) {
	storage := newFakeConnectionStorage()
	gw := newFakeGateway()
	workspaces := &fakeWorkspaceMembers{members: make(map[string][]entity.WorkspaceMember)}
	return NewNotifyService(gw, storage, workspaces, nopLogger()), storage, gw, workspaces
}

func registerIdentified(t *testing.T, storage *fakeConnectionStorage, connectionID string, userID uint) {
	t.Helper()
	_, err := storage.Create(context.Background(), &entity.Connection{ConnectionID: connectionID})
	require.NoError(t, err)
	_, err = storage.SetUser(context.Background(), connectionID, userID)
	require.NoError(t, err)
}

func TestNotifyService_Deliver_FailurePrunesConnection(t *testing.T) {
	notify, storage, gw, _ := newNotifyFixture()
	ctx := context.Background()

	registerIdentified(t, storage, "conn-1", 1)
	gw.failing["conn-1"] = true

	notify.Deliver(ctx, dto.Notify{Title: "hello"}, "conn-1")

	_, err := storage.GetByConnectionID(ctx, "conn-1")
	assert.Error(t, err, "failed delivery must deregister the connection")
}

func TestNotifyService_Broadcast_SkipsStaleConnections(t *testing.T) {
	notify, storage, gw, _ := newNotifyFixture()
	ctx := context.Background()

	registerIdentified(t, storage, "fresh", 1)
	registerIdentified(t, storage, "stale", 2)
	storage.connections["stale"].UpdatedAt = time.Now().Add(-10 * time.Minute)

	records, err := notify.Broadcast(ctx, dto.Notify{ID: "n-1", Type: "system", Title: "hello"})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "fresh", records[0].ConnectionID)
	assert.Len(t, gw.posted["fresh"], 1)
	assert.Empty(t, gw.posted["stale"])

	// Stale connections are skipped, not deleted.
	_, err = storage.GetByConnectionID(ctx, "stale")
	assert.NoError(t, err)
}

func TestNotifyService_Broadcast_RecordsFailedAttempts(t *testing.T) {
	notify, storage, gw, _ := newNotifyFixture()
	ctx := context.Background()

	registerIdentified(t, storage, "conn-1", 1)
	registerIdentified(t, storage, "conn-2", 2)
	registerIdentified(t, storage, "conn-3", 3)
	gw.failing["conn-2"] = true

	records, err := notify.Broadcast(ctx, dto.Notify{ID: "n-1", Type: "system", Title: "hello"})
	require.NoError(t, err)

	// Every connection in the snapshot gets a record, failed or not, and a
	// mid-broadcast deregistration does not disturb later deliveries.
	assert.Len(t, records, 3)
	assert.Len(t, gw.posted["conn-1"], 1)
	assert.Len(t, gw.posted["conn-3"], 1)

	_, err = storage.GetByConnectionID(ctx, "conn-2")
	assert.Error(t, err, "failed broadcast target must be deregistered")
}

func TestNotifyService_SendToWorkspaceMembers(t *testing.T) {
	notify, storage, gw, workspaces := newNotifyFixture()
	ctx := context.Background()

	workspaces.members["ws-1"] = []entity.WorkspaceMember{
		{WorkspaceID: "ws-1", UserID: 1},
		{WorkspaceID: "ws-1", UserID: 2},
		{WorkspaceID: "ws-1", UserID: 3},
	}
	registerIdentified(t, storage, "conn-1", 1)
	registerIdentified(t, storage, "conn-3", 3)

	// User 3 is the author and is excluded; user 2 has no connection.
	reached, err := notify.SendToWorkspaceMembers(ctx, "ws-1", 3, dto.Notify{Title: "hello"})
	require.NoError(t, err)

	require.Len(t, reached, 1)
	assert.Equal(t, uint(1), reached[0].UserID)
	assert.Len(t, gw.posted["conn-1"], 1)
	assert.Empty(t, gw.posted["conn-3"])
}

// Full lifecycle: connect, identify, broadcast with one dead socket, then
// broadcast again and observe the pruned registry.
func TestNotifyService_BroadcastLifecycle(t *testing.T) {
	storage := newFakeConnectionStorage()
	gw := newFakeGateway()
	workspaces := &fakeWorkspaceMembers{members: make(map[string][]entity.WorkspaceMember)}
	notify := NewNotifyService(gw, storage, workspaces, nopLogger())
	connections := NewConnectionService(storage)
	ctx := context.Background()

	_, err := connections.Connect(ctx, "conn-1")
	require.NoError(t, err)
	_, err = connections.Connect(ctx, "conn-2")
	require.NoError(t, err)
	_, err = connections.Identify(ctx, "conn-1", 1)
	require.NoError(t, err)
	_, err = connections.Identify(ctx, "conn-2", 2)
	require.NoError(t, err)

	gw.failing["conn-2"] = true

	records, err := notify.Broadcast(ctx, dto.Notify{ID: "n-1", Type: "system", Title: "round one"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = notify.Broadcast(ctx, dto.Notify{ID: "n-2", Type: "system", Title: "round two"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "conn-1", records[0].ConnectionID)
	assert.Len(t, gw.posted["conn-1"], 2)

	var delivered dto.Notify
	require.NoError(t, json.Unmarshal(gw.posted["conn-1"][1], &delivered))
	assert.Equal(t, "round two", delivered.Title)
}
