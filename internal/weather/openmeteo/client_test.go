package openmeteo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/weather/openmeteo"
	"github.com/zoneguard/zoneguard/internal/zone"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *openmeteo.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return openmeteo.NewClient(openmeteo.ClientConfig{
		BaseURL: server.URL,
		ZoneCoordinates: map[zone.ID]openmeteo.Coordinates{
			zone.North: {Lat: 19.2, Lon: 72.9},
		},
		Clock:  clockwork.NewFakeClockAt(time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)),
		Logger: zerolog.Nop(),
	})
}

func TestCurrentConditions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "latitude=19.2000")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":31.5,"weather_code":95,"wind_speed_10m":18.0}}`))
	})

	snap, err := client.CurrentConditions(context.Background(), zone.North)
	require.NoError(t, err)

	assert.Equal(t, zone.North, snap.Zone)
	assert.Equal(t, weather.ConditionStormy, snap.Condition)
	assert.InDelta(t, 31.5, snap.Temperature, 0.001)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), snap.Day)
}

func TestCurrentConditions_CodeMapping(t *testing.T) {
	tests := []struct {
		name string
		body string
		want weather.Condition
	}{
		{name: "clear", body: `{"current":{"weather_code":0,"wind_speed_10m":5}}`, want: weather.ConditionClear},
		{name: "cloudy", body: `{"current":{"weather_code":3,"wind_speed_10m":5}}`, want: weather.ConditionCloudy},
		{name: "fog", body: `{"current":{"weather_code":45,"wind_speed_10m":5}}`, want: weather.ConditionFoggy},
		{name: "rain", body: `{"current":{"weather_code":63,"wind_speed_10m":5}}`, want: weather.ConditionRainy},
		{name: "snow", body: `{"current":{"weather_code":73,"wind_speed_10m":5}}`, want: weather.ConditionSnowy},
		{name: "windy clear", body: `{"current":{"weather_code":0,"wind_speed_10m":45}}`, want: weather.ConditionWindy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			snap, err := client.CurrentConditions(context.Background(), zone.North)
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.Condition)
		})
	}
}

func TestCurrentConditions_UpstreamErrorIsProviderUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.CurrentConditions(context.Background(), zone.North)
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestCurrentConditions_UnknownZone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.CurrentConditions(context.Background(), zone.South)
	assert.Error(t, err)
}
