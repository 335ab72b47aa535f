package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olatube/backend/internal/domain"
	"github.com/olatube/backend/internal/repository"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAlreadySubscribed = errors.New("already subscribed to this channel")
)

// Notifier broadcasts real-time events to connected clients. Delivery is
// best effort; the store is authoritative.
type Notifier interface {
	SubscriptionAdded(accountID uuid.UUID, sub domain.Subscription, unread int)
	SubscriptionRemoved(accountID uuid.UUID, channelID string)
	NotificationsReset(accountID uuid.UUID)
}

type SubscriptionService struct {
	accountRepo repository.AccountRepository
	notifier    Notifier
}

func NewSubscriptionService(accountRepo repository.AccountRepository) *SubscriptionService {
	return &SubscriptionService{accountRepo: accountRepo}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *SubscriptionService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SubscribeInput struct {
	ChannelID        string `json:"channel_id"`
	ChannelTitle     string `json:"channel_title"`
	ChannelThumbnail string `json:"channel_thumbnail"`
}

// State is the ledger view of one account: its subscriptions in subscribe
// order plus the unread counter.
type State struct {
	Subscriptions       []domain.Subscription `json:"subscriptions"`
	UnreadNotifications int                   `json:"unread_notifications"`
}

// Subscribe appends the channel and bumps the unread counter by one. The
// duplicate check, the append, and the increment are one conditional write
// in the store, so concurrent calls for the same pair cannot double up.
func (s *SubscriptionService) Subscribe(ctx context.Context, accountID uuid.UUID, input SubscribeInput) error {
	sub := domain.Subscription{
		ChannelID:        input.ChannelID,
		ChannelTitle:     input.ChannelTitle,
		ChannelThumbnail: input.ChannelThumbnail,
		CreatedAt:        time.Now().UTC(),
	}

	unread, err := s.accountRepo.AddSubscription(ctx, accountID, sub)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateSubscription):
			return ErrAlreadySubscribed
		case errors.Is(err, repository.ErrNotFound):
			return ErrAccountNotFound
		}
		return fmt.Errorf("subscribing: %w", err)
	}

	if s.notifier != nil {
		s.notifier.SubscriptionAdded(accountID, sub, unread)
	}
	return nil
}

// Unsubscribe removes the channel if present. Removing a channel that was
// never subscribed succeeds and changes nothing; the counter is untouched
// either way.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, accountID uuid.UUID, channelID string) error {
	if err := s.accountRepo.RemoveSubscription(ctx, accountID, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("unsubscribing: %w", err)
	}

	if s.notifier != nil {
		s.notifier.SubscriptionRemoved(accountID, channelID)
	}
	return nil
}

// ResetNotifications sets the unread counter to zero, whatever it was.
func (s *SubscriptionService) ResetNotifications(ctx context.Context, accountID uuid.UUID) error {
	if err := s.accountRepo.ResetNotifications(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("resetting notifications: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotificationsReset(accountID)
	}
	return nil
}

// GetState returns the current subscriptions and unread counter.
func (s *SubscriptionService) GetState(ctx context.Context, accountID uuid.UUID) (*State, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return &State{
		Subscriptions:       account.Subscriptions,
		UnreadNotifications: account.UnreadNotifications,
	}, nil
}
