package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/olatube/backend/internal/domain"
	"github.com/olatube/backend/internal/mailer"
	"github.com/olatube/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

const bcryptCost = 10

type AuthService struct {
	accountRepo repository.AccountRepository
	tokens      *TokenService
	mail        mailer.Mailer
}

func NewAuthService(accountRepo repository.AccountRepository, tokens *TokenService, mail mailer.Mailer) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		tokens:      tokens,
		mail:        mail,
	}
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register hashes the password and creates the account. Email uniqueness is
// enforced by the store in the create itself, not by a lookup first. The
// welcome email goes out in the background after the commit; its failure is
// logged and never surfaces.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:                  uuid.New(),
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		PasswordHash:        string(hash),
		Subscriptions:       []domain.Subscription{},
		UnreadNotifications: 0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	go func(email, name string) {
		if err := s.mail.SendWelcome(email, name); err != nil {
			log.Warn("welcome email failed", "err", err)
		}
	}(account.Email, account.FullName())

	return account, nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password come back as the same ErrInvalidCreds.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		// Burn a comparison anyway so the two failure paths cost the same.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
		return nil, ErrInvalidCreds
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		return nil, ErrInvalidCreds
	}

	token, expiresAt, err := s.tokens.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &LoginResponse{
		AccountID: account.ID,
		Email:     account.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// dummyHash is a throwaway bcrypt hash compared against when the email is
// unknown, keeping response timing independent of account existence.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcryptCost)
	return h
}()
