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

type CustomerHandler struct {
	customers *services.CustomerService
	hub       *realtime.Hub
}

func NewCustomerHandler(customers *services.CustomerService, hub *realtime.Hub) *CustomerHandler {
	return &CustomerHandler{customers: customers, hub: hub}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.customers.Create(r.Context(), ownerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "name is required")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to create customer")
		return
	}

	h.hub.Broadcast(ownerID, "customers", "created")
	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	customers, err := h.customers.List(r.Context(), ownerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list customers")
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

// Search powers the autocomplete on name or phone prefix
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	customers, err := h.customers.Search(r.Context(), ownerID, q.Get("q"), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to search customers")
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := h.customers.Get(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "customer not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to load customer")
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req models.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.customers.Update(r.Context(), id, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "customer not found")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "name is required")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to update customer")
		}
		return
	}

	h.hub.Broadcast(ownerID, "customers", "updated")
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.customers.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "customer not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to delete customer")
		return
	}

	h.hub.Broadcast(ownerID, "customers", "deleted")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
