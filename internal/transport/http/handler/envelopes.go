package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/carzilla/auth-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
	Error     string `json:"error,omitempty"`
}

// AuthEnvelope wraps successful verification responses.
type AuthEnvelope struct {
	Success           bool         `json:"success"`
	Message           string       `json:"message,omitempty"`
	User              *domain.User `json:"user,omitempty"`
	AccessToken       string       `json:"accessToken,omitempty"`
	RefreshToken      string       `json:"refreshToken,omitempty"`
	ExpiresIn         int          `json:"expiresIn,omitempty"`
	IsProfileComplete bool         `json:"isProfileComplete"`
}

// UserEnvelope wraps profile responses.
type UserEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Success: false, Error: msg})
}

// httpError maps a service error to a status code and its user-facing
// message. Anything unmapped is logged and collapsed into a 500.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrNoActiveCode),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrTooManyAttempts),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDeliveryFailed):
		status = http.StatusInternalServerError
	default:
		slog.Error("request failed", "err", err)
	}
	writeError(w, status, domain.UserMessage(err))
}
