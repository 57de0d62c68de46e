package weather

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Provider defines the interface for live weather feeds. A provider is
// optional; deployments without one rely on stored snapshots and the
// deterministic fallback.
type Provider interface {
	// CurrentConditions fetches today's conditions for a zone.
	CurrentConditions(ctx context.Context, z zone.ID) (*Snapshot, error)

	// Name returns the provider name for logging.
	Name() string
}

// MetricsRecorder receives provider call and snapshot-store outcomes.
// *middleware.ProviderMetrics satisfies it; nil disables recording.
type MetricsRecorder interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
	RecordCacheHit(provider, operation string)
	RecordCacheMiss(provider, operation string)
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Repository is the snapshot store.
	Repository Repository

	// Provider is the optional live feed consulted on a store miss.
	Provider Provider

	// Metrics records provider call outcomes (optional).
	Metrics MetricsRecorder

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service resolves the weather for a (zone, day): stored snapshot first,
// then the live provider, then the deterministic fallback. A genuine store
// fault always propagates; a missing snapshot never does.
type Service struct {
	repo     Repository
	provider Provider
	metrics  MetricsRecorder
	logger   zerolog.Logger
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:     cfg.Repository,
		provider: cfg.Provider,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}
}

// ForDay returns the snapshot for a zone and day. The second return value
// reports whether the snapshot is an actual observation (stored or from
// the provider) as opposed to the fallback.
func (s *Service) ForDay(ctx context.Context, z zone.ID, day time.Time) (*Snapshot, bool, error) {
	snap, err := s.repo.FindForDay(ctx, z, day)
	if err == nil {
		if s.metrics != nil && s.provider != nil {
			s.metrics.RecordCacheHit(s.provider.Name(), "current_conditions")
		}
		return snap, true, nil
	}
	if !errors.Is(err, ErrNoSnapshot) {
		return nil, false, err
	}

	if s.provider != nil {
		if s.metrics != nil {
			s.metrics.RecordCacheMiss(s.provider.Name(), "current_conditions")
		}

		start := time.Now()
		snap, err := s.provider.CurrentConditions(ctx, z)
		if s.metrics != nil {
			s.metrics.RecordRequest(s.provider.Name(), "current_conditions", time.Since(start), err)
		}
		if err == nil {
			if err := s.repo.Upsert(ctx, snap); err != nil {
				s.logger.Warn().Err(err).
					Str("zone", z.String()).
					Msg("failed to store provider snapshot")
			}
			return snap, true, nil
		}

		s.logger.Warn().Err(err).
			Str("zone", z.String()).
			Str("provider", s.provider.Name()).
			Msg("weather provider failed, using fallback")
	}

	return Fallback(z, day), false, nil
}
