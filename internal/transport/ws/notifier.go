package ws

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/olatube/backend/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) SubscriptionAdded(accountID uuid.UUID, sub domain.Subscription, unread int) {
	evt, err := NewEvent(EventTypeSubscriptionAdded, SubscriptionAddedPayload{
		Subscription:        sub,
		UnreadNotifications: unread,
	})
	if err != nil {
		log.Error("ws notifier: marshal error", "err", err)
		return
	}
	n.hub.SendToAccount(accountID, evt)
}

func (n *HubNotifier) SubscriptionRemoved(accountID uuid.UUID, channelID string) {
	evt, err := NewEvent(EventTypeSubscriptionRemoved, SubscriptionRemovedPayload{ChannelID: channelID})
	if err != nil {
		log.Error("ws notifier: marshal error", "err", err)
		return
	}
	n.hub.SendToAccount(accountID, evt)
}

func (n *HubNotifier) NotificationsReset(accountID uuid.UUID) {
	evt, err := NewEvent(EventTypeNotificationsReset, NotificationsResetPayload{UnreadNotifications: 0})
	if err != nil {
		log.Error("ws notifier: marshal error", "err", err)
		return
	}
	n.hub.SendToAccount(accountID, evt)
}
