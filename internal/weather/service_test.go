package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

var testDay = time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

func TestService_StoredSnapshotWins(t *testing.T) {
	repo := weather.NewInMemoryRepository()
	require.NoError(t, repo.Upsert(context.Background(), &weather.Snapshot{
		Zone:        zone.South,
		Day:         testDay,
		Condition:   weather.ConditionStormy,
		Temperature: 12,
	}))

	svc := weather.NewService(weather.ServiceConfig{Repository: repo, Logger: zerolog.Nop()})

	snap, observed, err := svc.ForDay(context.Background(), zone.South, testDay)
	require.NoError(t, err)
	assert.True(t, observed)
	assert.Equal(t, weather.ConditionStormy, snap.Condition)
}

func TestService_MissFallsBackDeterministically(t *testing.T) {
	svc := weather.NewService(weather.ServiceConfig{
		Repository: weather.NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})

	snap, observed, err := svc.ForDay(context.Background(), zone.West, testDay)
	require.NoError(t, err)
	assert.False(t, observed, "fallback is not an observation")
	assert.Equal(t, weather.Fallback(zone.West, testDay), snap)
}

type faultyRepo struct{}

func (faultyRepo) FindForDay(context.Context, zone.ID, time.Time) (*weather.Snapshot, error) {
	return nil, errors.New("connection refused")
}

func (faultyRepo) Upsert(context.Context, *weather.Snapshot) error {
	return errors.New("connection refused")
}

func TestService_StoreFaultPropagates(t *testing.T) {
	svc := weather.NewService(weather.ServiceConfig{Repository: faultyRepo{}, Logger: zerolog.Nop()})

	_, _, err := svc.ForDay(context.Background(), zone.North, testDay)
	assert.Error(t, err)
}

type stubProvider struct {
	snap *weather.Snapshot
	err  error
}

func (p stubProvider) CurrentConditions(context.Context, zone.ID) (*weather.Snapshot, error) {
	return p.snap, p.err
}

func (stubProvider) Name() string { return "stub" }

func TestService_ProviderConsultedOnMiss(t *testing.T) {
	repo := weather.NewInMemoryRepository()
	provider := stubProvider{snap: &weather.Snapshot{
		Zone:        zone.East,
		Day:         testDay,
		Condition:   weather.ConditionRainy,
		Temperature: 9,
	}}

	svc := weather.NewService(weather.ServiceConfig{
		Repository: repo,
		Provider:   provider,
		Logger:     zerolog.Nop(),
	})

	snap, observed, err := svc.ForDay(context.Background(), zone.East, testDay)
	require.NoError(t, err)
	assert.True(t, observed)
	assert.Equal(t, weather.ConditionRainy, snap.Condition)

	// The provider result is stored for subsequent reads.
	stored, err := repo.FindForDay(context.Background(), zone.East, testDay)
	require.NoError(t, err)
	assert.Equal(t, weather.ConditionRainy, stored.Condition)
}

type recordingMetrics struct {
	requests int
	hits     int
	misses   int
}

func (m *recordingMetrics) RecordRequest(_, _ string, _ time.Duration, _ error) { m.requests++ }
func (m *recordingMetrics) RecordCacheHit(_, _ string)                         { m.hits++ }
func (m *recordingMetrics) RecordCacheMiss(_, _ string)                        { m.misses++ }

func TestService_RecordsProviderMetrics(t *testing.T) {
	repo := weather.NewInMemoryRepository()
	metrics := &recordingMetrics{}

	svc := weather.NewService(weather.ServiceConfig{
		Repository: repo,
		Provider: stubProvider{snap: &weather.Snapshot{
			Zone:      zone.East,
			Day:       testDay,
			Condition: weather.ConditionClear,
		}},
		Metrics: metrics,
		Logger:  zerolog.Nop(),
	})

	_, _, err := svc.ForDay(context.Background(), zone.East, testDay)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.misses)
	assert.Equal(t, 1, metrics.requests)

	// Second read hits the stored provider snapshot.
	_, _, err = svc.ForDay(context.Background(), zone.East, testDay)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.requests)
}

func TestService_ProviderFailureFallsBack(t *testing.T) {
	svc := weather.NewService(weather.ServiceConfig{
		Repository: weather.NewInMemoryRepository(),
		Provider:   stubProvider{err: weather.ErrProviderUnavailable},
		Logger:     zerolog.Nop(),
	})

	snap, observed, err := svc.ForDay(context.Background(), zone.Central, testDay)
	require.NoError(t, err)
	assert.False(t, observed)
	assert.Equal(t, weather.Fallback(zone.Central, testDay), snap)
}
