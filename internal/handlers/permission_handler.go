package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"vyapar-backend/internal/cache"
	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/services"
	"vyapar-backend/pkg/utils"
)

type PermissionHandler struct {
	perms *services.PermissionService
	hub   *realtime.Hub
}

func NewPermissionHandler(perms *services.PermissionService, hub *realtime.Hub) *PermissionHandler {
	return &PermissionHandler{perms: perms, hub: hub}
}

// GetMatrix returns a worker's full permission matrix, padded with deny
// rows for unset features.
func (h *PermissionHandler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	workerID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid worker id")
		return
	}

	matrix, err := h.perms.MatrixFor(r.Context(), workerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load permissions")
		return
	}
	utils.JSON(w, http.StatusOK, matrix)
}

// MyMatrix returns the caller's own permission matrix. Workers use it to
// decide which screens to render; the server still enforces every action.
func (h *PermissionHandler) MyMatrix(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	matrix, err := h.perms.SelfMatrix(r.Context(), userID, role)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to load permissions")
		return
	}
	utils.JSON(w, http.StatusOK, matrix)
}

// UpdateMatrix replaces a worker's permissions
func (h *PermissionHandler) UpdateMatrix(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	workerID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid worker id")
		return
	}

	var req models.UpdatePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.perms.UpdateMatrix(r.Context(), userID, ownerID, workerID, req.Permissions); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "worker not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to update permissions")
		return
	}

	cache.InvalidatePermissionCaches(r.Context())
	h.hub.Broadcast(ownerID, "worker_permissions", "updated")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "permissions updated"})
}
