package handlers

import (
	"net/http"

	"vyapar-backend/internal/auth"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/pkg/utils"
)

// WSHandler upgrades authenticated clients onto the change-notification hub.
// Browsers can't set headers on WebSocket requests, so the token rides in a
// query parameter instead of the Authorization header.
type WSHandler struct {
	hub *realtime.Hub
	jwt *auth.JWTManager
}

func NewWSHandler(hub *realtime.Hub, jwtManager *auth.JWTManager) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwtManager}
}

func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.Error(w, http.StatusUnauthorized, "token query parameter is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	h.hub.ServeWS(w, r, claims.OwnerID)
}
