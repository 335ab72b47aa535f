package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/olatube/backend/internal/service"
	"github.com/olatube/backend/pkg/validator"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := ownAccountID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		} else {
			writeUnhandled(w, "get profile", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := ownAccountID(w, r)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfileUpdate(input.DisplayName, input.Handle); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.profileService.Update(r.Context(), accountID, input); err != nil {
		switch {
		case errors.Is(err, service.ErrHandleTaken):
			writeError(w, http.StatusBadRequest, "HANDLE_TAKEN", "Handle is already taken")
		case errors.Is(err, service.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		default:
			writeUnhandled(w, "update profile", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}
