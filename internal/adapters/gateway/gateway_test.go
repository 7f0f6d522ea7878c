package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestSocket spins up a loopback server, registers the server side of the
// socket in the hub, and returns the client side for reading.
func dialTestSocket(t *testing.T, hub *Hub, connectionID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(connectionID, ws)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestHub_PostToConnection(t *testing.T) {
	hub := NewHub()
	client := dialTestSocket(t, hub, "conn-1")

	require.NoError(t, hub.PostToConnection(context.Background(), "conn-1", []byte(`{"action":"pong"}`)))

	messageType, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)
	assert.JSONEq(t, `{"action":"pong"}`, string(data))
}

func TestHub_PostToUnknownConnection(t *testing.T) {
	hub := NewHub()

	err := hub.PostToConnection(context.Background(), "missing", []byte("data"))
	assert.ErrorIs(t, err, ErrGone)
}

func TestHub_UnregisterClosesSocket(t *testing.T) {
	hub := NewHub()
	client := dialTestSocket(t, hub, "conn-1")

	hub.Unregister("conn-1")

	_, _, err := client.ReadMessage()
	assert.Error(t, err)

	err = hub.PostToConnection(context.Background(), "conn-1", []byte("data"))
	assert.ErrorIs(t, err, ErrGone)

	// Unregistering twice is harmless.
	hub.Unregister("conn-1")
}
