package handler

import (
	"net/http"

	"github.com/zoneguard/zoneguard/internal/api/models"
	"github.com/zoneguard/zoneguard/internal/api/response"
	"github.com/zoneguard/zoneguard/internal/dashboard"
)

// DashboardHandler serves the operations overview.
type DashboardHandler struct {
	dashboard *dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(d *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: d}
}

// GetDashboard handles GET /v1/dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ov, err := h.dashboard.Overview(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "required records could not be read")
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromDashboard(ov))
}
