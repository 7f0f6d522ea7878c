package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrGone signals that the gateway no longer holds a live socket for the
// requested connection id (the HTTP 410 case of a managed gateway).
var ErrGone = errors.New("connection gone")

const writeWait = 10 * time.Second

// Client is the management-side transport: it pushes a payload to a single
// gateway connection and reports delivery failure to the caller.
type Client interface {
	PostToConnection(ctx context.Context, connectionID string, data []byte) error
}

// conn wraps a websocket with a write lock; gorilla connections allow only one
// concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// Hub is the in-process gateway: it owns the live sockets keyed by their
// gateway-assigned connection ids and implements the management Client.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*conn),
	}
}

// Register attaches a freshly upgraded socket under its connection id.
func (h *Hub) Register(connectionID string, ws *websocket.Conn) {
	h.mu.Lock()
	h.conns[connectionID] = &conn{ws: ws}
	h.mu.Unlock()
}

// Unregister detaches and closes the socket for a connection id.
func (h *Hub) Unregister(connectionID string) {
	h.mu.Lock()
	c, ok := h.conns[connectionID]
	delete(h.conns, connectionID)
	h.mu.Unlock()

	if ok {
		_ = c.ws.Close()
	}
}

// PostToConnection writes data to a single connection. Unknown connection ids
// return ErrGone; write failures close the socket and are reported as gone too,
// wrapping the underlying error.
func (h *Hub) PostToConnection(_ context.Context, connectionID string, data []byte) error {
	h.mu.RLock()
	c, ok := h.conns[connectionID]
	h.mu.RUnlock()

	if !ok {
		return ErrGone
	}

	c.mu.Lock()
	err := c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err == nil {
		err = c.ws.WriteMessage(websocket.TextMessage, data)
	}
	c.mu.Unlock()

	if err != nil {
		h.Unregister(connectionID)
		return fmt.Errorf("%w: %v", ErrGone, err)
	}
	return nil
}
