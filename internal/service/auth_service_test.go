package service

import (
	"context"
	"testing"
	"time"

	"github.com/olatube/backend/internal/mailer"
	"github.com/olatube/backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *TokenService) {
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(memory.NewAccountRepo(), tokens, mailer.Nop{}), tokens
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()

	account, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@x.com",
		Password:  "pw1pw1pw1",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@x.com", account.Email)
	assert.Empty(t, account.Subscriptions)
	assert.Zero(t, account.UnreadNotifications)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotContains(t, account.PasswordHash, "pw1pw1pw1")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{FirstName: "Alice", LastName: "Smith", Email: "alice@x.com", Password: "password1"})
	require.NoError(t, err)

	// Same email, everything else different.
	_, err = svc.Register(ctx, RegisterInput{FirstName: "Bob", LastName: "Jones", Email: "alice@x.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, tokens := newAuthService()
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{FirstName: "Alice", LastName: "Smith", Email: "alice@x.com", Password: "password1"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginInput{Email: "alice@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, resp.AccountID)
	assert.Equal(t, "alice@x.com", resp.Email)

	// The minted token resolves back to the same identity.
	identity, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, identity.AccountID)
	assert.Equal(t, account.Email, identity.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{FirstName: "Alice", LastName: "Smith", Email: "alice@x.com", Password: "password1"})
	require.NoError(t, err)

	// Wrong password and unknown email fail identically.
	_, err = svc.Login(ctx, LoginInput{Email: "alice@x.com", Password: "wrong-password"})
	wrongPw := err
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "password1"})
	unknownEmail := err

	assert.ErrorIs(t, wrongPw, ErrInvalidCreds)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCreds)
	assert.Equal(t, wrongPw, unknownEmail)
}
