// Package prediction implements the per-zone risk calculator and the
// aggregator that fans it out across the fixed zone set.
package prediction

import (
	"errors"
	"time"

	"github.com/zoneguard/zoneguard/internal/timectx"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

// ErrDataUnavailable is returned when the data store failed or timed out.
// The engine performs no retries; the caller owns retry/fallback policy.
var ErrDataUnavailable = errors.New("zone data unavailable")

// Level is a computed pressure/risk classification.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Score maps the level onto the 1..3 scale used by overall-risk summing.
func (l Level) Score() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	default:
		return 1
	}
}

// Trend is the coarse direction of recent versus historical volume.
type Trend string

const (
	TrendIncreasing Trend = "Increasing"
	TrendDecreasing Trend = "Decreasing"
	TrendStable     Trend = "Stable"
)

// EnvironmentFactors records the weather and time context a prediction was
// computed under.
type EnvironmentFactors struct {
	WeatherCondition weather.Condition
	WeatherObserved  bool
	Temperature      float64
	Hour             int
	IsRushHour       bool
	IsWeekend        bool
	IsHoliday        bool
	Season           timectx.Season
}

// Details carries the supporting counts behind a prediction.
type Details struct {
	RecentActivityCount     int
	HistoricalActivityCount int
	RecentAccidentCount     int
	HistoricalAccidentCount int
	AvgHospitalLoad         float64
	HistoricalHospitalLoad  float64
	AccidentRiskScore       float64
	FleetTotal              int
	FleetAvailable          int
	Environment             EnvironmentFactors
}

// ZonePrediction is the computed risk assessment for one zone. It is
// recomputed on every request and never persisted; it has no identity
// beyond zone and timestamp.
type ZonePrediction struct {
	Zone              zone.ID
	EDPressure        Level
	AmbulancePressure Level
	AccidentRisk      Level
	OverallRisk       Level
	Trend             Trend
	Confidence        int
	Timestamp         time.Time
	Details           Details
}
