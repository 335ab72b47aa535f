package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/olatube/backend/internal/domain"
)

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	DisplayName *string
	Handle      *string
}

// AccountRepository is the persistence boundary for accounts. Every write is
// a single conditional operation: the uniqueness or existence check and the
// mutation happen atomically inside the store, never as a separate read
// followed by a write. Concurrent calls for the same account must not be able
// to interleave between check and write.
type AccountRepository interface {
	// Create persists a new account. Fails with ErrDuplicateEmail or
	// ErrDuplicateHandle when a unique field collides.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID loads an account with its subscriptions, in subscribe order.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail loads an account by its unique email.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// GetByHandle loads an account by its unique handle.
	GetByHandle(ctx context.Context, handle string) (*domain.Account, error)

	// UpdateProfile applies the given fields. Fails with ErrDuplicateHandle
	// when the new handle belongs to a different account.
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) error

	// AddSubscription appends a subscription and increments the unread
	// counter by one, as one conditional write. Returns the new counter
	// value. Fails with ErrDuplicateSubscription when the channel is already
	// present, ErrNotFound when the account does not exist.
	AddSubscription(ctx context.Context, id uuid.UUID, sub domain.Subscription) (int, error)

	// RemoveSubscription deletes the subscription if present. Removing an
	// absent channel is a successful no-op; only an unknown account fails.
	RemoveSubscription(ctx context.Context, id uuid.UUID, channelID string) error

	// ResetNotifications sets the unread counter to zero.
	ResetNotifications(ctx context.Context, id uuid.UUID) error
}
