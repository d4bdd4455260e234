package handlers

import (
	"net/http"

	"vyapar-backend/internal/middleware"
	"vyapar-backend/internal/services"
	"vyapar-backend/pkg/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Summary returns the dashboard aggregate
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetOwnerIDFromContext(r.Context())

	summary, err := h.reports.Summary(r.Context(), ownerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
