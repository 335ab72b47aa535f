package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/olatube/backend/internal/repository"
	"github.com/olatube/backend/internal/transport/http/middleware"
	"github.com/olatube/backend/pkg/validator"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}

// writeUnhandled reports transient storage trouble as retryable and
// everything else as an opaque internal error. Details go to the log only.
func writeUnhandled(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrUnavailable) {
		log.Warn("storage unavailable", "op", op, "err", err)
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Service temporarily unavailable, try again")
		return
	}
	log.Error("unhandled error", "op", op, "err", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}

// ownAccountID parses the {id} path value and requires it to match the
// authenticated identity. A mismatch reads the same as a missing account, so
// ids cannot be probed cross-account.
func ownAccountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	accountID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		return uuid.Nil, false
	}

	identity := middleware.GetIdentity(r.Context())
	if identity.AccountID != accountID {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
		return uuid.Nil, false
	}

	return accountID, true
}
