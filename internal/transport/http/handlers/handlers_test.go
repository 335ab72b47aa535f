package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olatube/backend/internal/mailer"
	"github.com/olatube/backend/internal/repository/memory"
	"github.com/olatube/backend/internal/service"
	"github.com/olatube/backend/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMux assembles the real route table over an in-memory store.
func newTestMux(ttl time.Duration) *http.ServeMux {
	repo := memory.NewAccountRepo()
	tokens := service.NewTokenService("test-secret", ttl)
	authService := service.NewAuthService(repo, tokens, mailer.Nop{})
	profileService := service.NewProfileService(repo)
	subscriptionService := service.NewSubscriptionService(repo)

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService)
	auth := middleware.Auth(tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts", authHandler.Register)
	mux.HandleFunc("POST /sessions", authHandler.Login)
	mux.Handle("GET /accounts/{id}/profile", auth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /accounts/{id}/profile", auth(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("POST /accounts/{id}/subscriptions", auth(http.HandlerFunc(subscriptionHandler.Subscribe)))
	mux.Handle("DELETE /accounts/{id}/subscriptions/{channelId}", auth(http.HandlerFunc(subscriptionHandler.Unsubscribe)))
	mux.Handle("GET /accounts/{id}/subscriptions", auth(http.HandlerFunc(subscriptionHandler.List)))
	mux.Handle("POST /accounts/{id}/notifications/reset", auth(http.HandlerFunc(subscriptionHandler.ResetNotifications)))
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, mux *http.ServeMux) (accountID, token string) {
	t.Helper()

	rec := doJSON(t, mux, http.MethodPost, "/accounts", "", map[string]string{
		"first_name": "Alice",
		"last_name":  "Smith",
		"email":      "alice@x.com",
		"password":   "pw1pw1pw1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		AccountID string `json:"account_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, mux, http.MethodPost, "/sessions", "", map[string]string{
		"email":    "alice@x.com",
		"password": "pw1pw1pw1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		AccountID string `json:"account_id"`
		Token     string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, created.AccountID, login.AccountID)
	require.NotEmpty(t, login.Token)

	return created.AccountID, login.Token
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestMux(time.Hour)

	rec := doJSON(t, mux, http.MethodPost, "/accounts", "", map[string]string{
		"first_name": "Alice",
		"last_name":  "Smith",
		"email":      "alice@x.com",
		"password":   "pw1pw1pw1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate email → 409.
	rec = doJSON(t, mux, http.MethodPost, "/accounts", "", map[string]string{
		"first_name": "Bob",
		"last_name":  "Jones",
		"email":      "alice@x.com",
		"password":   "otherpass1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Missing fields → 400 validation.
	rec = doJSON(t, mux, http.MethodPost, "/accounts", "", map[string]string{
		"email": "short@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	t.Parallel()

	mux := newTestMux(time.Hour)
	registerAndLogin(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/sessions", "", map[string]string{
		"email":    "alice@x.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestProfileEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestMux(time.Hour)
	accountID, token := registerAndLogin(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/accounts/"+accountID+"/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@x.com")
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, mux, http.MethodPut, "/accounts/"+accountID+"/profile", token, map[string]string{
		"display_name": "Alice S.",
		"handle":       "alice",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/accounts/"+accountID+"/profile", token, nil)
	assert.Contains(t, rec.Body.String(), "Alice S.")
}

func TestProfileEndpoint_HandleTaken(t *testing.T) {
	t.Parallel()

	mux := newTestMux(time.Hour)
	accountID, token := registerAndLogin(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/accounts", "", map[string]string{
		"first_name": "Bob",
		"last_name":  "Jones",
		"email":      "bob@x.com",
		"password":   "pw2pw2pw2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	loginRec := doJSON(t, mux, http.MethodPost, "/sessions", "", map[string]string{"email": "bob@x.com", "password": "pw2pw2pw2"})
	require.Equal(t, http.StatusOK, loginRec.Code)
	var bob struct {
		AccountID string `json:"account_id"`
		Token     string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &bob))

	rec = doJSON(t, mux, http.MethodPut, "/accounts/"+accountID+"/profile", token, map[string]string{"handle": "shared"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPut, "/accounts/"+bob.AccountID+"/profile", bob.Token, map[string]string{"handle": "shared"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "HANDLE_TAKEN")
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	mux := newTestMux(time.Hour)
	accountID, _ := registerAndLogin(t, mux)

	// No token.
	rec := doJSON(t, mux, http.MethodGet, "/accounts/"+accountID+"/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = doJSON(t, mux, http.MethodGet, "/accounts/"+accountID+"/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	t.Parallel()

	mux := newTestMux(-1 * time.Second)
	accountID, token := registerAndLogin(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/accounts/"+accountID+"/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestAccountIDMismatch(t *testing.T) {
	t.Parallel()

	mux := newTestMux(time.Hour)
	_, token := registerAndLogin(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/accounts/11111111-2222-3333-4444-555555555555/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptionEndpoints(t *testing.T) {
	t.Parallel()

	mux := newTestMux(time.Hour)
	accountID, token := registerAndLogin(t, mux)
	base := fmt.Sprintf("/accounts/%s/subscriptions", accountID)

	channel := map[string]string{
		"channel_id":        "channel-42",
		"channel_title":     "Channel 42",
		"channel_thumbnail": "https://cdn.example/thumb42.jpg",
	}

	rec := doJSON(t, mux, http.MethodPost, base, token, channel)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Second subscribe → 409, counter stays at 1.
	rec = doJSON(t, mux, http.MethodPost, base, token, channel)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var state struct {
		Subscriptions       []map[string]any `json:"subscriptions"`
		UnreadNotifications int              `json:"unread_notifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Subscriptions, 1)
	assert.Equal(t, 1, state.UnreadNotifications)

	// Missing fields → 400.
	rec = doJSON(t, mux, http.MethodPost, base, token, map[string]string{"channel_id": "channel-43"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unsubscribe, then unsubscribe again: both succeed.
	rec = doJSON(t, mux, http.MethodDelete, base+"/channel-42", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, mux, http.MethodDelete, base+"/channel-42", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Reset notifications.
	rec = doJSON(t, mux, http.MethodPost, fmt.Sprintf("/accounts/%s/notifications/reset", accountID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, base, token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Empty(t, state.Subscriptions)
	assert.Equal(t, 0, state.UnreadNotifications)
}
