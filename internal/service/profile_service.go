package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/olatube/backend/internal/repository"
)

var ErrHandleTaken = errors.New("handle already taken")

type ProfileService struct {
	accountRepo repository.AccountRepository
}

func NewProfileService(accountRepo repository.AccountRepository) *ProfileService {
	return &ProfileService{accountRepo: accountRepo}
}

type UpdateProfileInput struct {
	DisplayName *string `json:"display_name"`
	Handle      *string `json:"handle"`
}

// Profile is the public view of an account. No credentials, no ledger state.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName *string   `json:"display_name,omitempty"`
	Handle      *string   `json:"handle,omitempty"`
	Email       string    `json:"email"`
}

func (s *ProfileService) Get(ctx context.Context, accountID uuid.UUID) (*Profile, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return &Profile{
		ID:          account.ID,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		DisplayName: account.DisplayName,
		Handle:      account.Handle,
		Email:       account.Email,
	}, nil
}

// Update applies display name and handle changes. Handle uniqueness is
// checked by the store inside the same write, so two accounts can never hold
// the same handle, even for a moment.
func (s *ProfileService) Update(ctx context.Context, accountID uuid.UUID, input UpdateProfileInput) error {
	update := repository.ProfileUpdate{
		DisplayName: input.DisplayName,
		Handle:      input.Handle,
	}

	if err := s.accountRepo.UpdateProfile(ctx, accountID, update); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateHandle):
			return ErrHandleTaken
		case errors.Is(err, repository.ErrNotFound):
			return ErrAccountNotFound
		}
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}
