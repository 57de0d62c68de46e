// Package openmeteo provides a live weather provider backed by the
// Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/resilience"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "open-meteo"

	// DefaultBaseURL is the Open-Meteo forecast API base URL.
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"
)

// Coordinates locates a zone centroid for the forecast query.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional).
	BaseURL string

	// ZoneCoordinates maps each zone to its centroid (required).
	ZoneCoordinates map[zone.ID]Coordinates

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Clock supplies "now" for snapshot day stamping (optional).
	Clock clockwork.Clock

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo API client implementing weather.Provider.
type Client struct {
	baseURL    string
	coords     map[zone.ID]Coordinates
	httpClient *resilience.Client
	clock      clockwork.Clock
	logger     zerolog.Logger
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{Name: ProviderName})
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Client{
		baseURL:    baseURL,
		coords:     cfg.ZoneCoordinates,
		httpClient: httpClient,
		clock:      clock,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// currentResponse is the subset of the Open-Meteo payload we read.
type currentResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// CurrentConditions fetches today's conditions for a zone.
func (c *Client) CurrentConditions(ctx context.Context, z zone.ID) (*weather.Snapshot, error) {
	coord, ok := c.coords[z]
	if !ok {
		return nil, fmt.Errorf("no coordinates configured for zone %s", z)
	}

	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,weather_code,wind_speed_10m",
		c.baseURL, coord.Lat, coord.Lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", weather.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	day := weather.DayOf(c.clock.Now())
	return &weather.Snapshot{
		Zone:        z,
		Day:         day,
		Condition:   conditionFromCode(payload.Current.WeatherCode, payload.Current.WindSpeed),
		Temperature: payload.Current.Temperature,
	}, nil
}

// conditionFromCode maps WMO weather interpretation codes to the snapshot
// condition set. Strong wind overrides benign codes.
func conditionFromCode(code int, windSpeed float64) weather.Condition {
	switch {
	case code >= 95:
		return weather.ConditionStormy
	case code >= 71 && code <= 86:
		return weather.ConditionSnowy
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRainy
	case code == 45 || code == 48:
		return weather.ConditionFoggy
	case code >= 1 && code <= 3:
		if windSpeed >= 40 {
			return weather.ConditionWindy
		}
		return weather.ConditionCloudy
	default:
		if windSpeed >= 40 {
			return weather.ConditionWindy
		}
		return weather.ConditionClear
	}
}
