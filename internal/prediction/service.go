package prediction

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// ServiceConfig holds configuration for the prediction service.
type ServiceConfig struct {
	Calculator *Calculator
	Logger     zerolog.Logger
}

// Service runs the zone risk calculator across the fixed zone set.
type Service struct {
	calc   *Calculator
	logger zerolog.Logger
}

// NewService creates a new prediction service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		calc:   cfg.Calculator,
		logger: cfg.Logger,
	}
}

// Predictions computes one prediction per zone, in enumeration order.
// Zones are computed concurrently; the result preserves enumeration order
// regardless of completion order. Any zone's failure fails the whole call,
// there are no partial results.
func (s *Service) Predictions(ctx context.Context) ([]*ZonePrediction, error) {
	zones := zone.All()
	results := make([]*ZonePrediction, len(zones))
	errs := make([]error, len(zones))

	var wg sync.WaitGroup
	for i, z := range zones {
		wg.Add(1)
		go func(i int, z zone.ID) {
			defer wg.Done()
			results[i], errs[i] = s.calc.Calculate(ctx, z)
		}(i, z)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			s.logger.Error().Err(err).
				Str("zone", zones[i].String()).
				Msg("zone prediction failed, aborting aggregate")
			return nil, err
		}
	}

	return results, nil
}

// PredictionForZone computes the prediction for a single zone.
func (s *Service) PredictionForZone(ctx context.Context, z zone.ID) (*ZonePrediction, error) {
	return s.calc.Calculate(ctx, z)
}
