package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/timectx"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

const (
	recentWindow     = 24 * time.Hour
	historicalWindow = 7 * 24 * time.Hour
)

// CalculatorConfig holds the dependencies of the zone risk calculator.
type CalculatorConfig struct {
	Ambulance ambulance.Repository
	Accidents accident.Repository
	Weather   *weather.Service
	Clock     clockwork.Clock
	Calendar  timectx.Calendar
	Logger    zerolog.Logger
}

// Calculator computes one ZonePrediction per zone. It is a pure function
// of the supplied record set and the clock; it keeps no state between
// calls and performs no retries.
type Calculator struct {
	ambulance ambulance.Repository
	accidents accident.Repository
	weather   *weather.Service
	clock     clockwork.Clock
	calendar  timectx.Calendar
	logger    zerolog.Logger
}

// NewCalculator creates a new zone risk calculator.
func NewCalculator(cfg CalculatorConfig) *Calculator {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Calculator{
		ambulance: cfg.Ambulance,
		accidents: cfg.Accidents,
		weather:   cfg.Weather,
		clock:     clock,
		calendar:  cfg.Calendar,
		logger:    cfg.Logger,
	}
}

func dataUnavailable(what string, err error) error {
	return fmt.Errorf("%s: %w: %w", what, ErrDataUnavailable, err)
}

// Calculate produces the prediction for one zone at the clock's "now".
// Any store fault propagates as ErrDataUnavailable; missing weather does
// not, it falls back deterministically instead.
func (c *Calculator) Calculate(ctx context.Context, z zone.ID) (*ZonePrediction, error) {
	if !zone.Valid(z) {
		return nil, zone.ErrInvalidZone
	}

	now := c.clock.Now().UTC()
	recentFrom := now.Add(-recentWindow)
	historicalFrom := now.Add(-historicalWindow)

	recentLogs, err := c.ambulance.FindActivity(ctx, z, recentFrom, now)
	if err != nil {
		return nil, dataUnavailable("recent ambulance activity", err)
	}
	historicalLogs, err := c.ambulance.FindActivity(ctx, z, historicalFrom, recentFrom)
	if err != nil {
		return nil, dataUnavailable("historical ambulance activity", err)
	}

	recentAccidents, err := c.accidents.Find(ctx, z, recentFrom, now)
	if err != nil {
		return nil, dataUnavailable("recent accidents", err)
	}
	historicalAccidents, err := c.accidents.Find(ctx, z, historicalFrom, recentFrom)
	if err != nil {
		return nil, dataUnavailable("historical accidents", err)
	}

	snap, observed, err := c.weather.ForDay(ctx, z, weather.DayOf(now))
	if err != nil {
		return nil, dataUnavailable("weather snapshot", err)
	}

	fleetTotal, err := c.ambulance.CountFleet(ctx, z, "")
	if err != nil {
		return nil, dataUnavailable("fleet total", err)
	}
	fleetAvailable, err := c.ambulance.CountFleet(ctx, z, ambulance.UnitAvailable)
	if err != nil {
		return nil, dataUnavailable("fleet availability", err)
	}

	tc := timectx.From(now, c.calendar)

	avgLoad := HospitalAverageLoad(recentLogs)
	historicalLoad := HospitalAverageLoad(historicalLogs)

	ed := ClassifyEDPressure(avgLoad, historicalLoad)
	amb := ambulancePressure(len(recentLogs), len(historicalLogs), fleetAvailable, fleetTotal)
	accRisk, accScore := accidentRisk(recentAccidents, historicalAccidents, snap.Condition, tc)
	trend := trendOf(len(recentLogs), len(historicalLogs), len(recentAccidents), len(historicalAccidents))
	overall := overallRisk(ed, amb, accRisk, trend)
	conf := confidence(len(recentLogs), len(recentAccidents), observed)

	c.logger.Debug().
		Str("zone", z.String()).
		Str("overall_risk", string(overall)).
		Str("trend", string(trend)).
		Int("confidence", conf).
		Msg("zone prediction computed")

	return &ZonePrediction{
		Zone:              z,
		EDPressure:        ed,
		AmbulancePressure: amb,
		AccidentRisk:      accRisk,
		OverallRisk:       overall,
		Trend:             trend,
		Confidence:        conf,
		Timestamp:         now,
		Details: Details{
			RecentActivityCount:     len(recentLogs),
			HistoricalActivityCount: len(historicalLogs),
			RecentAccidentCount:     len(recentAccidents),
			HistoricalAccidentCount: len(historicalAccidents),
			AvgHospitalLoad:         avgLoad,
			HistoricalHospitalLoad:  historicalLoad,
			AccidentRiskScore:       accScore,
			FleetTotal:              fleetTotal,
			FleetAvailable:          fleetAvailable,
			Environment: EnvironmentFactors{
				WeatherCondition: snap.Condition,
				WeatherObserved:  observed,
				Temperature:      snap.Temperature,
				Hour:             tc.Hour,
				IsRushHour:       tc.IsRushHour,
				IsWeekend:        tc.IsWeekend,
				IsHoliday:        tc.IsHoliday,
				Season:           tc.Season,
			},
		},
	}, nil
}

// HospitalAverageLoad sums patient counts per hospital and averages across
// the hospitals that saw at least one record. No records means zero load.
func HospitalAverageLoad(records []*ambulance.ActivityRecord) float64 {
	perHospital := make(map[string]int)
	for _, rec := range records {
		perHospital[rec.HospitalID] += rec.PatientCount
	}

	if len(perHospital) == 0 {
		return 0
	}

	total := 0
	for _, sum := range perHospital {
		total += sum
	}
	return float64(total) / float64(len(perHospital))
}

// ClassifyEDPressure classifies average hospital load against fixed thresholds,
// with lower thresholds when load is rising against the historical mean.
func ClassifyEDPressure(avgLoad, historicalAvg float64) Level {
	increase := avgLoad > historicalAvg*1.2

	switch {
	case avgLoad >= 8 || (avgLoad >= 6 && increase):
		return LevelHigh
	case avgLoad >= 4 || (avgLoad >= 3 && increase):
		return LevelMedium
	default:
		return LevelLow
	}
}

// ambulancePressure prefers the fleet availability ratio when a roster is
// known and falls back to dispatch volume otherwise.
func ambulancePressure(recentCount, historicalCount, available, total int) Level {
	if total > 0 {
		ratio := float64(available) / float64(total)
		switch {
		case ratio < 0.2:
			return LevelHigh
		case ratio < 0.5:
			return LevelMedium
		default:
			return LevelLow
		}
	}

	increase := float64(recentCount) > float64(historicalCount)*1.3

	switch {
	case recentCount >= 12 || (recentCount >= 8 && increase):
		return LevelHigh
	case recentCount >= 6 || (recentCount >= 4 && increase):
		return LevelMedium
	default:
		return LevelLow
	}
}

// AccidentScore weights High/Critical incidents double against Medium.
func AccidentScore(records []*accident.Record) float64 {
	score := 0.0
	for _, rec := range records {
		switch rec.Severity {
		case accident.SeverityHigh, accident.SeverityCritical:
			score += 2
		case accident.SeverityMedium:
			score++
		}
	}
	return score
}

// accidentRisk scores recent incidents, applies a trend penalty against
// the historical window, then the weather and time multipliers in their
// fixed order, and classifies the result.
func accidentRisk(recent, historical []*accident.Record, cond weather.Condition, tc timectx.Context) (Level, float64) {
	score := AccidentScore(recent)
	historicalScore := AccidentScore(historical)

	if score > historicalScore*1.2 {
		score *= 1.3
	}

	score *= cond.RiskMultiplier()
	score *= timeMultiplier(tc)

	switch {
	case score >= 10:
		return LevelHigh, score
	case score >= 5:
		return LevelMedium, score
	default:
		return LevelLow, score
	}
}

// timeMultiplier compounds the time-of-day factors in a fixed order:
// rush hour, weekend, holiday, festival, season, then hour band.
func timeMultiplier(tc timectx.Context) float64 {
	m := 1.0

	if tc.IsRushHour {
		m *= 1.25
	}
	if tc.IsWeekend {
		m *= 1.15
	}
	if tc.IsHoliday {
		m *= 1.3
	}
	if tc.IsFestival {
		m *= 1.4
	}

	switch tc.Season {
	case timectx.SeasonMonsoon:
		m *= 1.2
	case timectx.SeasonSummer:
		m *= 1.1
	case timectx.SeasonWinter:
		m *= 1.15
	}

	switch {
	case tc.Hour >= 7 && tc.Hour <= 9:
		m *= 1.2
	case tc.Hour >= 17 && tc.Hour <= 19:
		m *= 1.25
	case tc.Hour >= 22 || tc.Hour <= 4:
		m *= 1.1
	}

	return m
}

// trendOf averages the relative change in ambulance and accident volume.
func trendOf(recentLogs, historicalLogs, recentAccidents, historicalAccidents int) Trend {
	logTrend := relativeChange(recentLogs, historicalLogs)
	accidentTrend := relativeChange(recentAccidents, historicalAccidents)

	combined := (logTrend + accidentTrend) / 2

	switch {
	case combined > 0.2:
		return TrendIncreasing
	case combined < -0.2:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func relativeChange(recent, historical int) float64 {
	if historical == 0 {
		return 0
	}
	return float64(recent-historical) / float64(historical)
}

// confidence grows with the amount of supporting data, capped at 95.
// The time-context term is always earned because the context is computed
// from the clock rather than fetched.
func confidence(recentLogs, recentAccidents int, weatherObserved bool) int {
	c := 50

	switch {
	case recentLogs >= 10:
		c += 15
	case recentLogs >= 5:
		c += 10
	case recentLogs >= 2:
		c += 5
	}

	switch {
	case recentAccidents >= 5:
		c += 10
	case recentAccidents >= 2:
		c += 5
	}

	if weatherObserved {
		c += 10
	}
	c += 5 // time context

	if c > 95 {
		c = 95
	}
	return c
}

// overallRisk sums the sub-scores, nudges by trend direction, clamps to
// [3,9], and classifies.
func overallRisk(ed, amb, acc Level, trend Trend) Level {
	sum := ed.Score() + amb.Score() + acc.Score()

	switch trend {
	case TrendIncreasing:
		sum++
	case TrendDecreasing:
		sum--
	}

	if sum < 3 {
		sum = 3
	}
	if sum > 9 {
		sum = 9
	}

	switch {
	case sum >= 7:
		return LevelHigh
	case sum >= 4:
		return LevelMedium
	default:
		return LevelLow
	}
}
