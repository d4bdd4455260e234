package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/services"
	"vyapar-backend/pkg/utils"
)

type CreditHandler struct {
	credits *services.CreditService
	ledger  *services.LedgerService
	hub     *realtime.Hub
}

func NewCreditHandler(credits *services.CreditService, ledger *services.LedgerService, hub *realtime.Hub) *CreditHandler {
	return &CreditHandler{credits: credits, ledger: ledger, hub: hub}
}

func (h *CreditHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.CreateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credit, err := h.credits.Create(r.Context(), ownerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "customer name, a positive amount and a valid credit type are required")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to create credit")
		return
	}

	h.hub.Broadcast(ownerID, "credits", "created")
	utils.JSON(w, http.StatusCreated, credit)
}

func (h *CreditHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	credits, err := h.credits.List(r.Context(), ownerID,
		r.URL.Query().Get("status"), r.URL.Query().Get("customer"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list credits")
		return
	}
	utils.JSON(w, http.StatusOK, credits)
}

func (h *CreditHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid credit id")
		return
	}

	credit, err := h.credits.Get(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "credit not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to load credit")
		return
	}
	utils.JSON(w, http.StatusOK, credit)
}

func (h *CreditHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid credit id")
		return
	}

	var req models.UpdateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credit, err := h.credits.Update(r.Context(), id, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "credit not found")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "amount must be positive and not below the paid amount")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to update credit")
		}
		return
	}

	h.hub.Broadcast(ownerID, "credits", "updated")
	utils.JSON(w, http.StatusOK, credit)
}

func (h *CreditHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid credit id")
		return
	}

	if err := h.credits.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "credit not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to delete credit")
		return
	}

	h.hub.Broadcast(ownerID, "credits", "deleted")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "credit deleted"})
}

// RecordPayment applies a payment against one credit
func (h *CreditHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid credit id")
		return
	}

	var req models.PayCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credit, err := h.credits.RecordPayment(r.Context(), id, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "credit not found")
		case errors.Is(err, services.ErrOverpayment):
			utils.Error(w, http.StatusBadRequest, "payment exceeds the remaining amount")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "payment amount must be positive")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to record payment")
		}
		return
	}

	h.hub.Broadcast(ownerID, "credits", "updated")
	h.hub.Broadcast(ownerID, "credit_transactions", "created")
	utils.JSON(w, http.StatusOK, credit)
}

// Payments lists the append-only payment history of one credit
func (h *CreditHandler) Payments(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid credit id")
		return
	}

	txns, err := h.credits.Payments(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "credit not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	utils.JSON(w, http.StatusOK, txns)
}

// CustomerLedger returns the merged running-balance history for a customer
func (h *CreditHandler) CustomerLedger(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	customer := r.URL.Query().Get("customer")
	if customer == "" {
		utils.Error(w, http.StatusBadRequest, "customer query parameter is required")
		return
	}

	events, err := h.ledger.BuildCustomerLedger(r.Context(), ownerID, customer)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to build ledger")
		return
	}
	utils.JSON(w, http.StatusOK, events)
}

// Summary aggregates one customer's credit position
func (h *CreditHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	customer := r.URL.Query().Get("customer")
	if customer == "" {
		utils.Error(w, http.StatusBadRequest, "customer query parameter is required")
		return
	}

	summary, err := h.credits.Summary(r.Context(), ownerID, customer)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
