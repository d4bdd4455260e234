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

type ExpenseHandler struct {
	expenses *services.ExpenseService
	hub      *realtime.Hub
}

func NewExpenseHandler(expenses *services.ExpenseService, hub *realtime.Hub) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, hub: hub}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.expenses.Create(r.Context(), ownerID, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "category, a positive amount and a YYYY-MM-DD date are required")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to create expense")
		return
	}

	h.hub.Broadcast(ownerID, "expenses", "created")
	utils.JSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	q := r.URL.Query()

	expenses, err := h.expenses.List(r.Context(), ownerID, q.Get("category"), q.Get("from"), q.Get("to"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	utils.JSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.expenses.Update(r.Context(), id, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "expense not found")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "category, a positive amount and a YYYY-MM-DD date are required")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to update expense")
		}
		return
	}

	h.hub.Broadcast(ownerID, "expenses", "updated")
	utils.JSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := h.expenses.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "expense not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	h.hub.Broadcast(ownerID, "expenses", "deleted")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

// SummaryByCategory aggregates spend per category in a date range
func (h *ExpenseHandler) SummaryByCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	q := r.URL.Query()

	summary, err := h.expenses.SummaryByCategory(r.Context(), ownerID, q.Get("from"), q.Get("to"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
