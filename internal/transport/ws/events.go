package ws

import (
	"encoding/json"
	"time"

	"github.com/olatube/backend/internal/domain"
)

// Event types - Client → Server
const (
	EventTypePing = "ping"
)

// Event types - Server → Client
const (
	EventTypeSubscriptionAdded   = "subscription.added"
	EventTypeSubscriptionRemoved = "subscription.removed"
	EventTypeNotificationsReset  = "notifications.reset"
	EventTypePong                = "pong"
	EventTypeError               = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Server → Client payloads ---

type SubscriptionAddedPayload struct {
	Subscription        domain.Subscription `json:"subscription"`
	UnreadNotifications int                 `json:"unread_notifications"`
}

type SubscriptionRemovedPayload struct {
	ChannelID string `json:"channel_id"`
}

type NotificationsResetPayload struct {
	UnreadNotifications int `json:"unread_notifications"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
