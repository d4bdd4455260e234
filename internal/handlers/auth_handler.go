package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/services"
	"vyapar-backend/pkg/utils"
)

type AuthHandler struct {
	users *services.UserService
	totp  *services.TOTPService
}

func NewAuthHandler(users *services.UserService, totp *services.TOTPService) *AuthHandler {
	return &AuthHandler{users: users, totp: totp}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i > 0 {
		host = host[:i]
	}
	return host
}

// Signup registers a new admin account
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			utils.Error(w, http.StatusConflict, "email already registered")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "name, email and a password of at least 6 characters are required")
		default:
			utils.Error(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Login authenticates and returns either a session or a 2FA challenge
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.users.Login(r.Context(), &req, clientIP(r), r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.Error(w, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, services.ErrAccountDisabled):
			utils.Error(w, http.StatusForbidden, "account is disabled")
		default:
			utils.Error(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	if result.RequiresTOTP {
		utils.JSON(w, http.StatusOK, result.TwoFactor)
		return
	}
	utils.JSON(w, http.StatusOK, result.Auth)
}

// Logout acknowledges the client discarding its token. Sessions are
// stateless JWTs, so there is nothing to revoke server side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type verifyTOTPRequest struct {
	TempToken string `json:"temp_token"`
	Code      string `json:"code"`
}

// VerifyTOTP completes a 2FA login
func (h *AuthHandler) VerifyTOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyTOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.totp.CompleteLogin(r.Context(), req.TempToken, req.Code, clientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, services.ErrInvalidTOTPCode) {
			utils.Error(w, http.StatusUnauthorized, "invalid verification code")
			return
		}
		utils.Error(w, http.StatusUnauthorized, "verification failed")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
