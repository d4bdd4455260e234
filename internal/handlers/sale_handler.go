package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
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

type SaleHandler struct {
	sales   *services.SaleService
	reports *services.ReportService
	hub     *realtime.Hub
}

func NewSaleHandler(sales *services.SaleService, reports *services.ReportService, hub *realtime.Hub) *SaleHandler {
	return &SaleHandler{sales: sales, reports: reports, hub: hub}
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	var req models.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale, err := h.sales.Create(r.Context(), ownerID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "customer name, at least one item and consistent amounts are required")
		case errors.Is(err, repositories.ErrInsufficientStock):
			utils.Error(w, http.StatusConflict, err.Error())
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to create sale")
		}
		return
	}

	h.hub.Broadcast(ownerID, "sales", "created")
	h.hub.Broadcast(ownerID, "products", "updated")
	utils.JSON(w, http.StatusCreated, sale)
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	sales, err := h.sales.List(r.Context(), ownerID,
		r.URL.Query().Get("status"), r.URL.Query().Get("customer"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list sales")
		return
	}
	utils.JSON(w, http.StatusOK, sales)
}

// GetByNumber resolves a sale from ?invoice=INV-000042
func (h *SaleHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	sale, err := h.sales.GetByInvoiceNumber(r.Context(), ownerID, r.URL.Query().Get("invoice"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.Error(w, http.StatusBadRequest, "invoice query parameter is required")
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "sale not found")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to load sale")
		}
		return
	}
	utils.JSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	sale, err := h.sales.Get(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "sale not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to load sale")
		return
	}
	utils.JSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	if err := h.sales.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "sale not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to delete sale")
		return
	}

	h.hub.Broadcast(ownerID, "sales", "deleted")
	h.hub.Broadcast(ownerID, "products", "updated")
	utils.JSON(w, http.StatusOK, map[string]string{"message": "sale deleted"})
}

// InvoicePDF streams the printable invoice
func (h *SaleHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	pdf, err := h.reports.GenerateInvoicePDF(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "sale not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to generate invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="invoice-%d.pdf"`, id))
	w.Write(pdf)
}
