package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/olatube/backend/internal/service"
	"github.com/olatube/backend/pkg/validator"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := ownAccountID(w, r)
	if !ok {
		return
	}

	var input service.SubscribeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateSubscribe(input.ChannelID, input.ChannelTitle, input.ChannelThumbnail); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.subscriptionService.Subscribe(r.Context(), accountID, input); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubscribed):
			writeError(w, http.StatusConflict, "ALREADY_SUBSCRIBED", "Already subscribed to this channel")
		case errors.Is(err, service.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		default:
			writeUnhandled(w, "subscribe", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Subscribed"})
}

func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := ownAccountID(w, r)
	if !ok {
		return
	}

	channelID := r.PathValue("channelId")
	if channelID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_CHANNEL", "Channel ID is required")
		return
	}

	if err := h.subscriptionService.Unsubscribe(r.Context(), accountID, channelID); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		} else {
			writeUnhandled(w, "unsubscribe", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Unsubscribed"})
}

func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := ownAccountID(w, r)
	if !ok {
		return
	}

	state, err := h.subscriptionService.GetState(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		} else {
			writeUnhandled(w, "list subscriptions", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (h *SubscriptionHandler) ResetNotifications(w http.ResponseWriter, r *http.Request) {
	accountID, ok := ownAccountID(w, r)
	if !ok {
		return
	}

	if err := h.subscriptionService.ResetNotifications(r.Context(), accountID); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		} else {
			writeUnhandled(w, "reset notifications", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notifications reset"})
}
