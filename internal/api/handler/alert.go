package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zoneguard/zoneguard/internal/alert"
	"github.com/zoneguard/zoneguard/internal/api/models"
	"github.com/zoneguard/zoneguard/internal/api/response"
	"github.com/zoneguard/zoneguard/internal/zone"
)

// AlertHandler serves derived alerts.
type AlertHandler struct {
	alerts *alert.Service
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts *alert.Service) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListAlerts handles GET /v1/alerts - all current alerts, severity-sorted.
// An optional ?zone= filter restricts to a single zone.
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	var (
		alerts []*alert.Alert
		err    error
	)
	if zoneParam := r.URL.Query().Get("zone"); zoneParam != "" {
		var z zone.ID
		z, err = zone.Parse(zoneParam)
		if err != nil {
			response.BadRequest(w, r, "unknown zone", []models.FieldError{
				{Field: "zone", Message: "must be one of North, South, East, West, Central", Code: "invalid_zone"},
			})
			return
		}
		alerts, err = h.alerts.AlertsByZone(r.Context(), z)
	} else {
		alerts, err = h.alerts.CurrentAlerts(r.Context())
	}
	if err != nil {
		response.ServiceUnavailable(w, r, "required records could not be read")
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromAlerts(alerts))
}

// ListAlertTypes handles GET /v1/alerts/types - the alert type catalogue.
func (h *AlertHandler) ListAlertTypes(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.FromAlertTypes(alert.TypeCatalogue()))
}

// AcknowledgeAlert handles POST /v1/alerts/{alertId}/acknowledge.
func (h *AlertHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "alertId")

	var req models.AcknowledgeAlertRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, r, "invalid request body", nil)
			return
		}
	}

	ack, err := h.alerts.Acknowledge(r.Context(), alertID, req.AcknowledgedBy)
	if err != nil {
		if errors.Is(err, alert.ErrAlertNotFound) {
			response.NotFound(w, r, "alert not found")
			return
		}
		response.ServiceUnavailable(w, r, "required records could not be read")
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromAcknowledgedAlert(ack))
}
