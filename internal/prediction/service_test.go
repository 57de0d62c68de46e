package prediction_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/prediction"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

func newService(t *testing.T, ambRepo ambulance.Repository) *prediction.Service {
	t.Helper()

	weatherSvc := weather.NewService(weather.ServiceConfig{
		Repository: weather.NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})

	calc := prediction.NewCalculator(prediction.CalculatorConfig{
		Ambulance: ambRepo,
		Accidents: accident.NewInMemoryRepository(),
		Weather:   weatherSvc,
		Clock:     clockwork.NewFakeClockAt(now),
		Logger:    zerolog.Nop(),
	})

	return prediction.NewService(prediction.ServiceConfig{
		Calculator: calc,
		Logger:     zerolog.Nop(),
	})
}

func TestPredictions_OneEntryPerZoneInOrder(t *testing.T) {
	svc := newService(t, ambulance.NewInMemoryRepository())

	preds, err := svc.Predictions(context.Background())
	require.NoError(t, err)

	require.Len(t, preds, zone.Count)
	for i, z := range zone.All() {
		assert.Equal(t, z, preds[i].Zone)
	}
}

func TestPredictions_FailFast(t *testing.T) {
	repo := failingAmbulanceRepo{ambulance.NewInMemoryRepository()}
	svc := newService(t, repo)

	preds, err := svc.Predictions(context.Background())
	assert.ErrorIs(t, err, prediction.ErrDataUnavailable)
	assert.Nil(t, preds, "no partial results on failure")
}

func TestPredictionForZone(t *testing.T) {
	svc := newService(t, ambulance.NewInMemoryRepository())

	pred, err := svc.PredictionForZone(context.Background(), zone.Central)
	require.NoError(t, err)
	assert.Equal(t, zone.Central, pred.Zone)
	assert.Equal(t, time.Date(2025, time.March, 4, 11, 0, 0, 0, time.UTC), pred.Timestamp)

	_, err = svc.PredictionForZone(context.Background(), zone.ID("Uptown"))
	assert.ErrorIs(t, err, zone.ErrInvalidZone)
}
