package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/hospital"
	"github.com/zoneguard/zoneguard/internal/ingest"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

var now = time.Date(2025, time.March, 4, 11, 0, 0, 0, time.UTC)

type fixture struct {
	ambulance *ambulance.InMemoryRepository
	accidents *accident.InMemoryRepository
	weather   *weather.InMemoryRepository
	hospitals *hospital.InMemoryRepository
	ingestor  *ingest.Ingestor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ambulance: ambulance.NewInMemoryRepository(),
		accidents: accident.NewInMemoryRepository(),
		weather:   weather.NewInMemoryRepository(),
		hospitals: hospital.NewInMemoryRepository(),
	}
	f.ingestor = ingest.NewIngestor(ingest.IngestorConfig{
		Ambulance: f.ambulance,
		Accidents: f.accidents,
		Weather:   f.weather,
		Hospitals: f.hospitals,
		Logger:    zerolog.Nop(),
	})
	return f
}

func TestIngest_AmbulanceActivity(t *testing.T) {
	f := newFixture(t)

	err := f.ingestor.Ingest(context.Background(), &ingest.RecordMessage{
		Kind: ingest.KindAmbulanceActivity,
		AmbulanceActivity: &ingest.AmbulanceActivityPayload{
			ID: "d1", Zone: "north", HospitalID: "h1",
			PatientCount: 3, Risk: "High", Timestamp: now,
		},
	})
	require.NoError(t, err)

	records, err := f.ambulance.FindActivity(context.Background(), zone.North, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, ambulance.DispatchRiskHigh, records[0].Risk)
	assert.Equal(t, 3, records[0].PatientCount)
}

func TestIngest_Accident(t *testing.T) {
	f := newFixture(t)

	err := f.ingestor.Ingest(context.Background(), &ingest.RecordMessage{
		Kind: ingest.KindAccident,
		Accident: &ingest.AccidentPayload{
			ID: "a1", Zone: "East", Severity: "Critical",
			Description: "multi vehicle", Timestamp: now,
		},
	})
	require.NoError(t, err)

	records, err := f.accidents.Find(context.Background(), zone.East, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, accident.SeverityCritical, records[0].Severity)
}

func TestIngest_FleetUnitAndHospital(t *testing.T) {
	f := newFixture(t)

	err := f.ingestor.Ingest(context.Background(), &ingest.RecordMessage{
		Kind:      ingest.KindFleetUnit,
		FleetUnit: &ingest.FleetUnitPayload{ID: "u1", Zone: "West", Status: "available"},
	})
	require.NoError(t, err)

	count, err := f.ambulance.CountFleet(context.Background(), zone.West, ambulance.UnitAvailable)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = f.ingestor.Ingest(context.Background(), &ingest.RecordMessage{
		Kind:     ingest.KindHospital,
		Hospital: &ingest.HospitalPayload{ID: "h1", Name: "West General", Zone: "West", Capacity: 30},
	})
	require.NoError(t, err)

	h, err := f.hospitals.Get(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, 30, h.Capacity)
}

func TestIngest_WeatherSnapshotTruncatesDay(t *testing.T) {
	f := newFixture(t)

	err := f.ingestor.Ingest(context.Background(), &ingest.RecordMessage{
		Kind: ingest.KindWeatherSnapshot,
		WeatherSnapshot: &ingest.WeatherSnapshotPayload{
			Zone: "Central", Day: now, Condition: "Stormy", Temperature: 19,
		},
	})
	require.NoError(t, err)

	day := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	snap, err := f.weather.FindForDay(context.Background(), zone.Central, day)
	require.NoError(t, err)
	assert.Equal(t, weather.ConditionStormy, snap.Condition)
}

func TestIngest_InvalidMessages(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		msg  *ingest.RecordMessage
	}{
		{"unknown kind", &ingest.RecordMessage{Kind: "census"}},
		{"missing payload", &ingest.RecordMessage{Kind: ingest.KindAccident}},
		{"bad zone", &ingest.RecordMessage{
			Kind:     ingest.KindFleetUnit,
			FleetUnit: &ingest.FleetUnitPayload{ID: "u1", Zone: "Harbor", Status: "available"},
		}},
		{"bad severity", &ingest.RecordMessage{
			Kind:     ingest.KindAccident,
			Accident: &ingest.AccidentPayload{ID: "a1", Zone: "North", Severity: "SEVERE", Timestamp: now},
		}},
		{"missing id", &ingest.RecordMessage{
			Kind: ingest.KindAmbulanceActivity,
			AmbulanceActivity: &ingest.AmbulanceActivityPayload{
				Zone: "North", Risk: "Low", Timestamp: now,
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.ingestor.Ingest(context.Background(), tt.msg)
			assert.ErrorIs(t, err, ingest.ErrInvalidMessage)
		})
	}
}
