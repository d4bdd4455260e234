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

type ProductHandler struct {
	products *services.ProductService
	hub      *realtime.Hub
}

func NewProductHandler(products *services.ProductService, hub *realtime.Hub) *ProductHandler {
	return &ProductHandler{products: products, hub: hub}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.Create(r.Context(), ownerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.Error(w, http.StatusBadRequest, "name is required; price and stock may not be negative")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.hub.Broadcast(ownerID, "products", "created")
	utils.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	lowStockOnly := r.URL.Query().Get("low_stock") == "true"

	products, err := h.products.List(r.Context(), ownerID, lowStockOnly)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	utils.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.products.Get(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "product not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	utils.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.Update(r.Context(), id, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "product not found")
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "name is required; price and stock may not be negative")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	h.hub.Broadcast(ownerID, "products", "updated")
	utils.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.products.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "product not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.hub.Broadcast(ownerID, "products", "deleted")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
