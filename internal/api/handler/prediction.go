package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zoneguard/zoneguard/internal/api/models"
	"github.com/zoneguard/zoneguard/internal/api/response"
	"github.com/zoneguard/zoneguard/internal/prediction"
	"github.com/zoneguard/zoneguard/internal/zone"
)

// PredictionHandler serves zone risk predictions.
type PredictionHandler struct {
	predictions *prediction.Service
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(predictions *prediction.Service) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// ListPredictions handles GET /v1/predictions - one prediction per zone in
// enumeration order.
func (h *PredictionHandler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	preds, err := h.predictions.Predictions(r.Context())
	if err != nil {
		writePredictionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromZonePredictions(preds))
}

// GetZonePrediction handles GET /v1/predictions/{zone}.
func (h *PredictionHandler) GetZonePrediction(w http.ResponseWriter, r *http.Request) {
	z, err := zone.Parse(chi.URLParam(r, "zone"))
	if err != nil {
		response.BadRequest(w, r, "unknown zone", []models.FieldError{
			{Field: "zone", Message: "must be one of North, South, East, West, Central", Code: "invalid_zone"},
		})
		return
	}

	pred, err := h.predictions.PredictionForZone(r.Context(), z)
	if err != nil {
		writePredictionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.FromZonePrediction(pred))
}

// writePredictionError maps prediction errors onto problem responses.
func writePredictionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, zone.ErrInvalidZone):
		response.BadRequest(w, r, "unknown zone", nil)
	case errors.Is(err, prediction.ErrDataUnavailable):
		response.ServiceUnavailable(w, r, "required records could not be read")
	default:
		response.InternalError(w, r, "prediction failed")
	}
}
