package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/timectx"
	"github.com/zoneguard/zoneguard/internal/weather"
)

func TestEDPressure_Boundaries(t *testing.T) {
	tests := []struct {
		name          string
		avgLoad       float64
		historicalAvg float64
		want          Level
	}{
		{name: "exactly 8 is high", avgLoad: 8, historicalAvg: 100, want: LevelHigh},
		{name: "7.99 without increase is medium", avgLoad: 7.99, historicalAvg: 7.99, want: LevelMedium},
		{name: "6 with increase is high", avgLoad: 6, historicalAvg: 4, want: LevelHigh},
		{name: "6 without increase is medium", avgLoad: 6, historicalAvg: 6, want: LevelMedium},
		{name: "exactly 4 is medium", avgLoad: 4, historicalAvg: 4, want: LevelMedium},
		{name: "3 with increase is medium", avgLoad: 3, historicalAvg: 2, want: LevelMedium},
		{name: "3.99 without increase is low", avgLoad: 3.99, historicalAvg: 4, want: LevelLow},
		{name: "no records is low", avgLoad: 0, historicalAvg: 0, want: LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEDPressure(tt.avgLoad, tt.historicalAvg))
		})
	}
}

func TestAmbulancePressure_FleetPathTakesPriority(t *testing.T) {
	// Ratio 0.1 < 0.2 regardless of log counts.
	assert.Equal(t, LevelHigh, ambulancePressure(0, 0, 1, 10))
	// Ratio 0.4 < 0.5.
	assert.Equal(t, LevelMedium, ambulancePressure(100, 0, 4, 10))
	// Ratio 0.8 even though volume alone would be high.
	assert.Equal(t, LevelLow, ambulancePressure(20, 2, 8, 10))
}

func TestAmbulancePressure_VolumeFallback(t *testing.T) {
	tests := []struct {
		name       string
		recent     int
		historical int
		want       Level
	}{
		{name: "13 recent is high", recent: 13, historical: 8, want: LevelHigh},
		{name: "8 with increase is high", recent: 8, historical: 5, want: LevelHigh},
		{name: "8 without increase is medium", recent: 8, historical: 8, want: LevelMedium},
		{name: "6 is medium", recent: 6, historical: 6, want: LevelMedium},
		{name: "4 with increase is medium", recent: 4, historical: 3, want: LevelMedium},
		{name: "4 without increase is low", recent: 4, historical: 4, want: LevelLow},
		{name: "quiet zone is low", recent: 1, historical: 2, want: LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ambulancePressure(tt.recent, tt.historical, 0, 0))
		})
	}
}

func accidentsOf(severities ...accident.Severity) []*accident.Record {
	records := make([]*accident.Record, len(severities))
	for i, s := range severities {
		records[i] = &accident.Record{Severity: s}
	}
	return records
}

// quietContext is a Tuesday at 11:00: no rush hour, no hour band, no
// weekend or calendar factors. The Summer season factor (x1.1) always
// applies since every month has a season.
func quietContext() timectx.Context {
	return timectx.Context{Hour: 11, DayOfWeek: time.Tuesday, Season: timectx.SeasonSummer}
}

func TestAccidentRisk_WeatherMultiplierFlipsClassification(t *testing.T) {
	// Four recent High incidents score 8; matching history avoids the
	// trend penalty. Summer season contributes x1.1.
	recent := accidentsOf(accident.SeverityHigh, accident.SeverityHigh, accident.SeverityHigh, accident.SeverityHigh)
	historical := accidentsOf(accident.SeverityHigh, accident.SeverityHigh, accident.SeverityHigh, accident.SeverityHigh)

	level, score := accidentRisk(recent, historical, weather.ConditionClear, quietContext())
	assert.Equal(t, LevelMedium, level)
	assert.InDelta(t, 8.8, score, 0.001)

	level, score = accidentRisk(recent, historical, weather.ConditionStormy, quietContext())
	assert.Equal(t, LevelHigh, level)
	assert.InDelta(t, 17.6, score, 0.001)
}

func TestAccidentRisk_TrendPenalty(t *testing.T) {
	recent := accidentsOf(accident.SeverityHigh, accident.SeverityHigh)
	// Empty history: score 4 > 0*1.2, penalty applies: 4*1.3*1.1 = 5.72.
	level, score := accidentRisk(recent, nil, weather.ConditionClear, quietContext())
	assert.Equal(t, LevelMedium, level)
	assert.InDelta(t, 5.72, score, 0.001)
}

func TestAccidentRisk_SeverityWeights(t *testing.T) {
	// Critical and High weigh 2, Medium 1, Low 0.
	recent := accidentsOf(accident.SeverityCritical, accident.SeverityMedium, accident.SeverityLow)
	historical := accidentsOf(accident.SeverityCritical, accident.SeverityMedium)

	_, score := accidentRisk(recent, historical, weather.ConditionClear, quietContext())
	assert.InDelta(t, 3*1.1, score, 0.001)
}

func TestTimeMultiplier(t *testing.T) {
	tests := []struct {
		name string
		tc   timectx.Context
		want float64
	}{
		{
			name: "quiet midday",
			tc:   timectx.Context{Hour: 11, Season: timectx.SeasonSummer},
			want: 1.1,
		},
		{
			name: "morning rush in monsoon",
			tc:   timectx.Context{Hour: 8, IsRushHour: true, Season: timectx.SeasonMonsoon},
			want: 1.25 * 1.2 * 1.2, // rush, monsoon, 7-9h band
		},
		{
			name: "weekend festival evening",
			tc:   timectx.Context{Hour: 18, IsRushHour: true, IsWeekend: true, IsFestival: true, Season: timectx.SeasonWinter},
			want: 1.25 * 1.15 * 1.4 * 1.15 * 1.25,
		},
		{
			name: "late night winter",
			tc:   timectx.Context{Hour: 23, Season: timectx.SeasonWinter},
			want: 1.15 * 1.1,
		},
		{
			name: "holiday morning",
			tc:   timectx.Context{Hour: 7, IsHoliday: true, Season: timectx.SeasonSummer},
			want: 1.3 * 1.1 * 1.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, timeMultiplier(tt.tc), 0.0001)
		})
	}
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name                                 string
		recentLogs, histLogs                 int
		recentAccidents, historicalAccidents int
		want                                 Trend
	}{
		{name: "both rising", recentLogs: 10, histLogs: 5, recentAccidents: 6, historicalAccidents: 3, want: TrendIncreasing},
		{name: "both falling", recentLogs: 2, histLogs: 10, recentAccidents: 1, historicalAccidents: 5, want: TrendDecreasing},
		{name: "flat", recentLogs: 5, histLogs: 5, recentAccidents: 3, historicalAccidents: 3, want: TrendStable},
		{name: "no history is stable", recentLogs: 9, histLogs: 0, recentAccidents: 4, historicalAccidents: 0, want: TrendStable},
		{name: "mixed cancels out", recentLogs: 10, histLogs: 5, recentAccidents: 1, historicalAccidents: 4, want: TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trendOf(tt.recentLogs, tt.histLogs, tt.recentAccidents, tt.historicalAccidents)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfidence_MonotonicAndCapped(t *testing.T) {
	// More recent data never lowers confidence.
	prev := 0
	for _, logs := range []int{0, 2, 5, 10, 50} {
		c := confidence(logs, 0, false)
		assert.GreaterOrEqual(t, c, prev)
		prev = c
	}

	assert.Equal(t, 55, confidence(0, 0, false))
	assert.Equal(t, 90, confidence(10, 5, true))
	assert.LessOrEqual(t, confidence(1000, 1000, true), 95)
}

func TestOverallRisk(t *testing.T) {
	tests := []struct {
		name         string
		ed, amb, acc Level
		trend        Trend
		want         Level
	}{
		{name: "all low stable", ed: LevelLow, amb: LevelLow, acc: LevelLow, trend: TrendStable, want: LevelLow},
		{name: "all low increasing bumps to medium", ed: LevelLow, amb: LevelLow, acc: LevelLow, trend: TrendIncreasing, want: LevelMedium},
		{name: "all high", ed: LevelHigh, amb: LevelHigh, acc: LevelHigh, trend: TrendStable, want: LevelHigh},
		{name: "two high one medium decreasing", ed: LevelHigh, amb: LevelHigh, acc: LevelMedium, trend: TrendDecreasing, want: LevelHigh},
		{name: "mixed medium", ed: LevelMedium, amb: LevelMedium, acc: LevelLow, trend: TrendStable, want: LevelMedium},
		{name: "boundary sum 7 is high", ed: LevelHigh, amb: LevelMedium, acc: LevelMedium, trend: TrendStable, want: LevelHigh},
		{name: "boundary sum 6 is medium", ed: LevelHigh, amb: LevelMedium, acc: LevelLow, trend: TrendStable, want: LevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overallRisk(tt.ed, tt.amb, tt.acc, tt.trend))
		})
	}
}

func TestHospitalAverageLoad(t *testing.T) {
	records := []*ambulance.ActivityRecord{
		{HospitalID: "h1", PatientCount: 3},
		{HospitalID: "h1", PatientCount: 5},
		{HospitalID: "h2", PatientCount: 4},
	}

	// h1 sums to 8, h2 to 4; average 6.
	assert.InDelta(t, 6.0, HospitalAverageLoad(records), 0.001)
	assert.Zero(t, HospitalAverageLoad(nil))
}
