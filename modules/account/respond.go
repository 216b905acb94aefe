package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/foliogen/foliogen/pkg/logger"
	"github.com/foliogen/foliogen/pkg/validator"
	"github.com/foliogen/foliogen/svc/auth"
)

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps service errors to status codes and short human-readable
// messages. Unknown errors become an opaque 500: internals never reach the
// client.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field] = fe.Message
		}
		respondJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Message: "Validation failed.",
			Fields:  fields,
		})
		return
	}

	switch {
	case errors.Is(err, auth.ErrDuplicateAccount):
		respondJSON(w, http.StatusConflict, messageResponse{Message: "An account with this email already exists."})
	case errors.Is(err, auth.ErrAccountNotFound):
		respondJSON(w, http.StatusNotFound, messageResponse{Message: "No pending verification for this email."})
	case errors.Is(err, auth.ErrInvalidCode):
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: "That code is not valid."})
	case errors.Is(err, auth.ErrExpiredCode):
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: "That code has expired. Request a new one."})
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid email or password."})
	case errors.Is(err, auth.ErrTooManyAttempts):
		respondJSON(w, http.StatusTooManyRequests, messageResponse{Message: "Too many attempts. Try again later."})
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			logger.Error(err),
			logger.Component("account"),
		)
		respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "Something went wrong."})
	}
}
