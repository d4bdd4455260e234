package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/services"
	"vyapar-backend/internal/storage"
	"vyapar-backend/pkg/utils"
)

type SettingsHandler struct {
	settings *services.SettingsService
	hub      *realtime.Hub
}

func NewSettingsHandler(settings *services.SettingsService, hub *realtime.Hub) *SettingsHandler {
	return &SettingsHandler{settings: settings, hub: hub}
}

func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	settings, err := h.settings.List(r.Context(), ownerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list settings")
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	key := mux.Vars(r)["key"]

	setting, err := h.settings.Get(r.Context(), ownerID, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "setting not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to load setting")
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	key := mux.Vars(r)["key"]

	var req models.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	setting, err := h.settings.Update(r.Context(), ownerID, userID, key, req.SettingValue)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "setting key is required")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to update setting")
		return
	}

	h.hub.Broadcast(ownerID, "app_settings", "updated")
	utils.JSON(w, http.StatusOK, setting)
}

// UploadLogo accepts a multipart form with a "logo" file capped at 2 MB
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxLogoSize+4096)
	if err := r.ParseMultipartForm(storage.MaxLogoSize); err != nil {
		utils.Error(w, http.StatusRequestEntityTooLarge, "logo must be at most 2 MB")
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "logo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to read logo")
		return
	}

	contentType := header.Header.Get("Content-Type")
	setting, err := h.settings.UploadLogo(r.Context(), ownerID, userID, data, contentType)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "logo must be a PNG, JPEG or WebP of at most 2 MB")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to upload logo")
		return
	}

	h.hub.Broadcast(ownerID, "app_settings", "updated")
	utils.JSON(w, http.StatusOK, setting)
}
