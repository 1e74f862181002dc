package handler

import (
	"encoding/json"
	"net/http"

	"github.com/carzilla/auth-api/internal/application/profile"
	"github.com/carzilla/auth-api/internal/domain"
	"github.com/carzilla/auth-api/internal/transport/http/middleware"
)

// ProfileHandler handles the authenticated /auth/me endpoints.
type ProfileHandler struct {
	svc profile.Service
}

func NewProfileHandler(svc profile.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	u, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{Success: true, User: u})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.svc.Update(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{
		Success: true,
		Message: "Profile updated successfully",
		User:    u,
	})
}
