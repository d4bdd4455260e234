package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/services"
	"vyapar-backend/pkg/utils"
)

// TOTPHandler manages 2FA setup for the logged-in user
type TOTPHandler struct {
	totp *services.TOTPService
}

func NewTOTPHandler(totp *services.TOTPService) *TOTPHandler {
	return &TOTPHandler{totp: totp}
}

func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	resp, err := h.totp.Setup(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to set up two-factor authentication")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

type totpCodeRequest struct {
	Code string `json:"code"`
}

func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req totpCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.totp.Enable(r.Context(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTOTPCode):
			utils.Error(w, http.StatusBadRequest, "invalid verification code")
		case errors.Is(err, services.ErrTOTPNotSetup):
			utils.Error(w, http.StatusBadRequest, "run setup first")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to enable two-factor authentication")
		}
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "two-factor authentication enabled"})
}

func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req totpCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.totp.Disable(r.Context(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTOTPCode):
			utils.Error(w, http.StatusBadRequest, "invalid verification code")
		case errors.Is(err, services.ErrTOTPNotSetup):
			utils.Error(w, http.StatusBadRequest, "two-factor authentication is not enabled")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to disable two-factor authentication")
		}
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "two-factor authentication disabled"})
}
