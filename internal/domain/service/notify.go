package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/pkg/logger/types"
	"gorm.io/gorm"
)

// broadcastFreshness is the heartbeat window for broadcast targets: connections
// idle longer than this are skipped (but not deleted).
const broadcastFreshness = 5 * time.Minute

type notifyConnectionStorage interface {
	DeleteByConnectionID(ctx context.Context, connectionID string) (*entity.Connection, error)
	GetLatestByUserID(ctx context.Context, userID uint) (*entity.Connection, error)
	GetFresh(ctx context.Context, since time.Time) ([]entity.Connection, error)
}

type notifyWorkspaceStorage interface {
	GetMembers(ctx context.Context, workspaceID string) ([]entity.WorkspaceMember, error)
}

type gatewayClient interface {
	PostToConnection(ctx context.Context, connectionID string, data []byte) error
}

// NotifyService delivers payloads to gateway connections, one connection at a
// time. Delivery is best effort: a failed send deregisters the connection and
// is never retried or surfaced to the caller.
type NotifyService struct {
	connectionStorage notifyConnectionStorage
	workspaceStorage  notifyWorkspaceStorage
	gateway           gatewayClient
	logger            *types.Logger
}

func NewNotifyService(
	gateway gatewayClient,
	connectionStorage notifyConnectionStorage,
	workspaceStorage notifyWorkspaceStorage,
	logger *types.Logger,
) *NotifyService {
	return &NotifyService{
		connectionStorage: connectionStorage,
		workspaceStorage:  workspaceStorage,
		gateway:           gateway,
		logger:            logger,
	}
}

// Deliver serializes the payload and hands it to the gateway for a single
// connection. Any transport error is treated as evidence the connection is
// dead: the connection is deregistered and the error is swallowed. Transient
// failures are conflated with permanent ones on purpose; the registry contract
// encodes this behavior.
func (s *NotifyService) Deliver(ctx context.Context, payload interface{}, connectionID string) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Errorf("failed to marshal payload for connection %s: %v", connectionID, err)
		return
	}

	if err = s.gateway.PostToConnection(ctx, connectionID, data); err != nil {
		s.logger.Warnf("delivery to connection %s failed, deregistering: %v", connectionID, err)
		if _, errDelete := s.connectionStorage.DeleteByConnectionID(ctx, connectionID); errDelete != nil {
			s.logger.Errorf("failed to deregister connection %s: %v", connectionID, errDelete)
		}
	}
}

// SendToWorkspaceMembers delivers the payload to every workspace member with a
// live connection, sequentially, skipping excludeUserID and members without a
// connection. Returns the members that had one.
func (s *NotifyService) SendToWorkspaceMembers(
	ctx context.Context,
	workspaceID string,
	excludeUserID uint,
	payload interface{},
) ([]entity.WorkspaceMember, error) {
	members, err := s.workspaceStorage.GetMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	var reached []entity.WorkspaceMember
	for _, member := range members {
		if member.UserID == excludeUserID {
			continue
		}

		connection, errLookup := s.connectionStorage.GetLatestByUserID(ctx, member.UserID)
		if errLookup != nil {
			if !errors.Is(errLookup, gorm.ErrRecordNotFound) {
				s.logger.Errorf("failed to look up connection for user %d: %v", member.UserID, errLookup)
			}
			continue
		}

		s.Deliver(ctx, payload, connection.ConnectionID)
		reached = append(reached, member)
	}

	return reached, nil
}

// Broadcast delivers the notification to every connection seen within the
// freshness window. The connection list is snapshotted once and iterated
// sequentially, so a deregistration during delivery N cannot affect delivery
// N+1. Every attempt is recorded, whether or not it succeeded.
func (s *NotifyService) Broadcast(ctx context.Context, notify dto.Notify) ([]dto.BroadcastRecord, error) {
	connections, err := s.connectionStorage.GetFresh(ctx, time.Now().Add(-broadcastFreshness))
	if err != nil {
		return nil, err
	}

	records := make([]dto.BroadcastRecord, 0, len(connections))
	for _, connection := range connections {
		s.Deliver(ctx, notify, connection.ConnectionID)
		records = append(records, dto.BroadcastRecord{
			ConnectionID: connection.ConnectionID,
			Notification: notify,
		})
	}

	return records, nil
}

// Relay forwards a client-supplied message envelope to every fresh connection.
// Backs the generic "send" action.
func (s *NotifyService) Relay(ctx context.Context, message dto.WebsocketMessage) error {
	connections, err := s.connectionStorage.GetFresh(ctx, time.Now().Add(-broadcastFreshness))
	if err != nil {
		return err
	}

	for _, connection := range connections {
		s.Deliver(ctx, message, connection.ConnectionID)
	}
	return nil
}
