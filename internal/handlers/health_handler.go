package handlers

import (
	"net/http"

	"vyapar-backend/internal/health"
	"vyapar-backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.checker.Live())
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.checker.Ready(r.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	status := h.checker.Detailed(r.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
