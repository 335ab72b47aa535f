package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user: credentials, profile, and the
// subscription/notification state that hangs off it.
type Account struct {
	ID                  uuid.UUID      `json:"id"`
	FirstName           string         `json:"first_name"`
	LastName            string         `json:"last_name"`
	DisplayName         *string        `json:"display_name,omitempty"`
	Handle              *string        `json:"handle,omitempty"`
	Email               string         `json:"email"`
	PasswordHash        string         `json:"-"`
	Subscriptions       []Subscription `json:"subscriptions"`
	UnreadNotifications int            `json:"unread_notifications"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// FullName returns the display name when set, otherwise first + last.
func (a *Account) FullName() string {
	if a.DisplayName != nil && *a.DisplayName != "" {
		return *a.DisplayName
	}
	return a.FirstName + " " + a.LastName
}

// Subscription is a one-way follow of an external channel. The title and
// thumbnail are display copies captured at subscribe time, never re-fetched.
type Subscription struct {
	ChannelID        string    `json:"channel_id"`
	ChannelTitle     string    `json:"channel_title"`
	ChannelThumbnail string    `json:"channel_thumbnail"`
	CreatedAt        time.Time `json:"created_at"`
}
