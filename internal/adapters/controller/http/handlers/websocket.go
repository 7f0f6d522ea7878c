package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/planloop/planloop/internal/adapters/gateway"
	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/service"
	"github.com/planloop/planloop/pkg/logger/types"
)

type WebsocketHandler struct {
	hub         *gateway.Hub
	connections *service.ConnectionService
	notify      *service.NotifyService
	logger      *types.Logger

	upgrader websocket.Upgrader
}

func NewWebsocketHandler(
	hub *gateway.Hub,
	connections *service.ConnectionService,
	notify *service.NotifyService,
	logger *types.Logger,
) *WebsocketHandler {
	return &WebsocketHandler{
		hub:         hub,
		connections: connections,
		notify:      notify,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and runs the connection lifecycle: register with
// the hub and the registry, dispatch incoming actions, and deregister on any
// exit path so a dropped socket never leaves a registry row behind.
func (h *WebsocketHandler) Serve(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	connectionID := uuid.NewString()
	if _, err = h.connections.Connect(c.Request.Context(), connectionID); err != nil {
		h.logger.Errorf("failed to register connection %s: %v", connectionID, err)
		_ = ws.Close()
		return
	}
	h.hub.Register(connectionID, ws)

	defer func() {
		h.hub.Unregister(connectionID)
		// The request context is gone once the socket drops.
		if _, errDisconnect := h.connections.Disconnect(context.Background(), connectionID); errDisconnect != nil {
			h.logger.Errorf("failed to deregister connection %s: %v", connectionID, errDisconnect)
		}
	}()

	for {
		_, data, errRead := ws.ReadMessage()
		if errRead != nil {
			return
		}

		var message dto.WebsocketMessage
		if errUnmarshal := json.Unmarshal(data, &message); errUnmarshal != nil {
			h.logger.Warnf("malformed message on connection %s: %v", connectionID, errUnmarshal)
			continue
		}

		switch message.Action {
		case dto.ActionPing:
			h.handlePing(c.Request.Context(), connectionID, message.Payload)
		case dto.ActionSend:
			if errRelay := h.notify.Relay(c.Request.Context(), message); errRelay != nil {
				h.logger.Errorf("relay from connection %s failed: %v", connectionID, errRelay)
			}
		default:
			h.logger.Debugf("unknown action %q on connection %s", message.Action, connectionID)
		}
	}
}

// handlePing binds the connection to the claimed user and echoes a pong. The
// client retries pings until it sees the pong, so identification tolerates
// repeats.
func (h *WebsocketHandler) handlePing(ctx context.Context, connectionID string, payload json.RawMessage) {
	var ping dto.PingPayload
	if err := json.Unmarshal(payload, &ping); err != nil {
		h.logger.Warnf("malformed ping on connection %s: %v", connectionID, err)
		return
	}

	if _, err := h.connections.Identify(ctx, connectionID, ping.UserID); err != nil {
		h.logger.Errorf("failed to identify connection %s: %v", connectionID, err)
		return
	}

	pongPayload, err := json.Marshal(dto.PongPayload{ReceivedID: ping.ID, SentAt: time.Now()})
	if err != nil {
		h.logger.Errorf("failed to marshal pong for connection %s: %v", connectionID, err)
		return
	}
	h.notify.Deliver(ctx, dto.WebsocketMessage{Action: dto.ActionPong, Payload: pongPayload}, connectionID)
}

type revokedConnection struct {
	ID     string `json:"id"`
	UserID *uint  `json:"userId"`
}

// RevokeAll drops every registered connection, registry and hub both, and
// returns the revoked connections with the users they were bound to.
func (h *WebsocketHandler) RevokeAll(c *gin.Context) {
	revoked, err := h.connections.RevokeAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]revokedConnection, 0, len(revoked))
	for _, connection := range revoked {
		h.hub.Unregister(connection.ConnectionID)
		out = append(out, revokedConnection{
			ID:     connection.ConnectionID,
			UserID: connection.UserID,
		})
	}
	c.JSON(http.StatusOK, out)
}
