package dashboard

import (
	"testing"

	"github.com/zoneguard/zoneguard/internal/alert"
	"github.com/zoneguard/zoneguard/internal/prediction"
)

func TestOverallPressure(t *testing.T) {
	high := &prediction.ZonePrediction{OverallRisk: prediction.LevelHigh}
	low := &prediction.ZonePrediction{OverallRisk: prediction.LevelLow}
	critical := &alert.Alert{Severity: alert.SeverityCritical}
	info := &alert.Alert{Severity: alert.SeverityInfo}

	tests := []struct {
		name        string
		hospitals   int
		predictions []*prediction.ZonePrediction
		alerts      []*alert.Alert
		want        PressureLevel
	}{
		{"no hospitals", 0, []*prediction.ZonePrediction{high, high}, []*alert.Alert{critical}, PressureNoData},
		{"two high risk zones", 3, []*prediction.ZonePrediction{high, high, low}, nil, PressureCritical},
		{"critical alert", 3, []*prediction.ZonePrediction{low}, []*alert.Alert{critical}, PressureCritical},
		{"one high risk zone", 3, []*prediction.ZonePrediction{high, low}, nil, PressureWarning},
		{"many minor alerts", 3, []*prediction.ZonePrediction{low}, []*alert.Alert{info, info, info, info, info, info}, PressureWarning},
		{"five minor alerts", 3, []*prediction.ZonePrediction{low}, []*alert.Alert{info, info, info, info, info}, PressureNormal},
		{"quiet", 3, []*prediction.ZonePrediction{low}, nil, PressureNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallPressure(tt.hospitals, tt.predictions, tt.alerts); got != tt.want {
				t.Errorf("overallPressure() = %q, want %q", got, tt.want)
			}
		})
	}
}
