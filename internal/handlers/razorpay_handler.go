package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/internal/services"
	"vyapar-backend/pkg/utils"
)

type RazorpayHandler struct {
	razorpay *services.RazorpayService
	hub      *realtime.Hub
}

func NewRazorpayHandler(razorpay *services.RazorpayService, hub *realtime.Hub) *RazorpayHandler {
	return &RazorpayHandler{razorpay: razorpay, hub: hub}
}

// CreateOrder starts an online payment for a customer
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.razorpay.CreateOrder(r.Context(), ownerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "customer name and a positive amount are required")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to create payment order")
		return
	}

	h.hub.Broadcast(ownerID, "online_transactions", "created")
	utils.JSON(w, http.StatusCreated, txn)
}

// Webhook receives Razorpay events. Unauthenticated; trust comes from the
// signature header.
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "failed to read body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if err := h.razorpay.HandleWebhook(r.Context(), body, signature); err != nil {
		if errors.Is(err, services.ErrInvalidSignature) {
			utils.Error(w, http.StatusUnauthorized, "invalid signature")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "webhook processing failed")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
