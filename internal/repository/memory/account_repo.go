// Package memory holds an in-memory AccountRepository with the same
// conditional-write semantics as the Postgres one. It backs service and
// handler tests; every operation does its check and its mutation under a
// single mutex hold, so it honors the same atomicity contract.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/olatube/backend/internal/domain"
	"github.com/olatube/backend/internal/repository"
)

type AccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *AccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
		if account.Handle != nil && a.Handle != nil && *a.Handle == *account.Handle {
			return repository.ErrDuplicateHandle
		}
	}

	r.accounts[account.ID] = clone(account)
	return nil
}

func (r *AccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	return clone(a), nil
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) GetByHandle(_ context.Context, handle string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Handle != nil && *a.Handle == handle {
			return clone(a), nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) UpdateProfile(_ context.Context, id uuid.UUID, update repository.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}

	if update.Handle != nil {
		for otherID, other := range r.accounts {
			if otherID != id && other.Handle != nil && *other.Handle == *update.Handle {
				return repository.ErrDuplicateHandle
			}
		}
		a.Handle = update.Handle
	}
	if update.DisplayName != nil {
		a.DisplayName = update.DisplayName
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *AccountRepo) AddSubscription(_ context.Context, id uuid.UUID, sub domain.Subscription) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	for _, s := range a.Subscriptions {
		if s.ChannelID == sub.ChannelID {
			return 0, repository.ErrDuplicateSubscription
		}
	}

	a.Subscriptions = append(a.Subscriptions, sub)
	a.UnreadNotifications++
	a.UpdatedAt = time.Now().UTC()
	return a.UnreadNotifications, nil
}

func (r *AccountRepo) RemoveSubscription(_ context.Context, id uuid.UUID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}

	for i, s := range a.Subscriptions {
		if s.ChannelID == channelID {
			a.Subscriptions = append(a.Subscriptions[:i], a.Subscriptions[i+1:]...)
			a.UpdatedAt = time.Now().UTC()
			break
		}
	}
	return nil
}

func (r *AccountRepo) ResetNotifications(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.UnreadNotifications = 0
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// clone keeps callers from sharing slices with the store.
func clone(a *domain.Account) *domain.Account {
	c := *a
	c.Subscriptions = make([]domain.Subscription, len(a.Subscriptions))
	copy(c.Subscriptions, a.Subscriptions)
	return &c
}
