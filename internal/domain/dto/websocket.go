package dto

import (
	"encoding/json"
	"time"
)

// Websocket actions. The lifecycle actions are emitted by the gateway itself,
// the rest travel inside the {action, payload} envelope.
const (
	ActionConnect         = "$connect"
	ActionDisconnect      = "$disconnect"
	ActionPing            = "ping"
	ActionPong            = "pong"
	ActionSend            = "send"
	ActionActivityCreated = "activity:created"
	ActionActivityUpdated = "activity:updated"
	ActionActivityDeleted = "activity:deleted"
)

// WebsocketMessage is the wire envelope for every gateway message.
type WebsocketMessage struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PingPayload identifies the connection with a user on the first heartbeat.
type PingPayload struct {
	UserID uint   `json:"userId"`
	ID     string `json:"id"`
}

// PongPayload acknowledges a heartbeat. The recievedId spelling is part of the
// wire protocol and kept as-is.
type PongPayload struct {
	ReceivedID string    `json:"recievedId"`
	SentAt     time.Time `json:"sentAt"`
}

// Notify is the transient notification payload constructed at send time. It is
// not the persisted SystemNotification row.
type Notify struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	DismissedAt *time.Time `json:"dismissedAt"`
}

// BroadcastRecord reports one attempted delivery during a broadcast, whether
// or not the delivery succeeded.
type BroadcastRecord struct {
	ConnectionID string `json:"connectionId"`
	Notification Notify `json:"notification"`
}
