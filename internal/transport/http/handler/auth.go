package handler

import (
	"encoding/json"
	"net/http"

	"github.com/carzilla/auth-api/internal/application/auth"
	"github.com/carzilla/auth-api/internal/domain"
	"github.com/carzilla/auth-api/internal/pkg/validate"
)

// AuthHandler handles the OTP sign-in endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	expiresIn, err := h.svc.SendOTP(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{
		Success:   true,
		Message:   "OTP sent successfully to your email",
		ExpiresIn: expiresIn,
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.OTP == "" {
		writeError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Success:           true,
		Message:           "Login successful",
		User:              result.User,
		AccessToken:       result.AccessToken,
		RefreshToken:      result.RefreshToken,
		ExpiresIn:         result.ExpiresIn,
		IsProfileComplete: result.IsProfileComplete,
	})
}
