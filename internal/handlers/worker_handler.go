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

// WorkerHandler manages worker accounts. Every route sits behind
// RequireAdmin.
type WorkerHandler struct {
	users *services.UserService
	hub   *realtime.Hub
}

func NewWorkerHandler(users *services.UserService, hub *realtime.Hub) *WorkerHandler {
	return &WorkerHandler{users: users, hub: hub}
}

func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worker, err := h.users.CreateWorker(r.Context(), userID, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			utils.Error(w, http.StatusConflict, "email already registered")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "name, email and a password of at least 6 characters are required")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to create worker")
		}
		return
	}

	h.hub.Broadcast(ownerID, "workers", "created")
	utils.JSON(w, http.StatusCreated, worker)
}

func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	workers, err := h.users.ListWorkers(r.Context(), ownerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list workers")
		return
	}
	utils.JSON(w, http.StatusOK, workers)
}

func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid worker id")
		return
	}

	var req models.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worker, err := h.users.UpdateWorker(r.Context(), id, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "worker not found")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "invalid worker details")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to update worker")
		}
		return
	}

	h.hub.Broadcast(ownerID, "workers", "updated")
	utils.JSON(w, http.StatusOK, worker)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive enables or disables a worker account
func (h *WorkerHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid worker id")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	worker, err := h.users.SetWorkerActive(r.Context(), userID, ownerID, id, req.Active)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "worker not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to update worker")
		return
	}

	h.hub.Broadcast(ownerID, "workers", "updated")
	utils.JSON(w, http.StatusOK, worker)
}

func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid worker id")
		return
	}

	if err := h.users.DeleteWorker(r.Context(), userID, ownerID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "worker not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to delete worker")
		return
	}

	h.hub.Broadcast(ownerID, "workers", "deleted")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "worker deleted"})
}
