package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/internal/services"
	"vyapar-backend/pkg/utils"
)

type PaymentHandler struct {
	payments *services.PaymentService
	hub      *realtime.Hub
}

func NewPaymentHandler(payments *services.PaymentService, hub *realtime.Hub) *PaymentHandler {
	return &PaymentHandler{payments: payments, hub: hub}
}

func (h *PaymentHandler) writeAllocationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		utils.Error(w, http.StatusBadRequest, "payment amount must be positive")
	case errors.Is(err, services.ErrTargetNotFound):
		utils.Error(w, http.StatusBadRequest, "target invoice not found or already paid")
	case errors.Is(err, services.ErrValidation):
		utils.Error(w, http.StatusBadRequest, "customer name is required")
	default:
		utils.Error(w, http.StatusInternalServerError, "payment failed")
	}
}

// Preview shows how a payment would spread without persisting anything
func (h *PaymentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.ReceivePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode == "" {
		req.Mode = models.AllocationModeAuto
	}

	result, err := h.payments.Preview(r.Context(), ownerID, &req)
	if err != nil {
		h.writeAllocationError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// Receive records a payment and its allocation
func (h *PaymentHandler) Receive(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.ReceivePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.payments.Receive(r.Context(), ownerID, userID, &req)
	if err != nil {
		h.writeAllocationError(w, err)
		return
	}

	h.hub.Broadcast(ownerID, "payment_ledger", "created")
	h.hub.Broadcast(ownerID, "sales", "updated")
	utils.JSON(w, http.StatusCreated, entry)
}

// History lists recorded payments, optionally filtered by customer
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	entries, err := h.payments.History(r.Context(), ownerID, r.URL.Query().Get("customer"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}
