package models

import (
	"github.com/zoneguard/zoneguard/internal/prediction"
)

// ZonePrediction is the wire representation of a zone risk prediction.
type ZonePrediction struct {
	Zone              string            `json:"zone"`
	EDPressure        string            `json:"edPressure"`
	AmbulancePressure string            `json:"ambulancePressure"`
	AccidentRisk      string            `json:"accidentRisk"`
	OverallRisk       string            `json:"overallRisk"`
	Trend             string            `json:"trend"`
	Confidence        int               `json:"confidence"`
	Timestamp         Timestamp         `json:"timestamp"`
	Details           PredictionDetails `json:"details"`
}

// PredictionDetails carries the inputs behind a prediction.
type PredictionDetails struct {
	RecentActivityCount     int                `json:"recentActivityCount"`
	HistoricalActivityCount int                `json:"historicalActivityCount"`
	RecentAccidentCount     int                `json:"recentAccidentCount"`
	HistoricalAccidentCount int                `json:"historicalAccidentCount"`
	AvgHospitalLoad         float64            `json:"avgHospitalLoad"`
	HistoricalHospitalLoad  float64            `json:"historicalHospitalLoad"`
	AccidentRiskScore       float64            `json:"accidentRiskScore"`
	FleetTotal              int                `json:"fleetTotal"`
	FleetAvailable          int                `json:"fleetAvailable"`
	EnvironmentalFactors    EnvironmentFactors `json:"environmentalFactors"`
}

// EnvironmentFactors carries the weather and time context of a prediction.
type EnvironmentFactors struct {
	WeatherCondition string  `json:"weatherCondition"`
	WeatherObserved  bool    `json:"weatherObserved"`
	Temperature      float64 `json:"temperature"`
	Hour             int     `json:"hour"`
	IsRushHour       bool    `json:"isRushHour"`
	IsWeekend        bool    `json:"isWeekend"`
	IsHoliday        bool    `json:"isHoliday"`
	Season           string  `json:"season"`
}

// FromZonePrediction converts a domain prediction to its wire form.
func FromZonePrediction(p *prediction.ZonePrediction) ZonePrediction {
	env := p.Details.Environment
	return ZonePrediction{
		Zone:              p.Zone.String(),
		EDPressure:        string(p.EDPressure),
		AmbulancePressure: string(p.AmbulancePressure),
		AccidentRisk:      string(p.AccidentRisk),
		OverallRisk:       string(p.OverallRisk),
		Trend:             string(p.Trend),
		Confidence:        p.Confidence,
		Timestamp:         Timestamp(p.Timestamp),
		Details: PredictionDetails{
			RecentActivityCount:     p.Details.RecentActivityCount,
			HistoricalActivityCount: p.Details.HistoricalActivityCount,
			RecentAccidentCount:     p.Details.RecentAccidentCount,
			HistoricalAccidentCount: p.Details.HistoricalAccidentCount,
			AvgHospitalLoad:         p.Details.AvgHospitalLoad,
			HistoricalHospitalLoad:  p.Details.HistoricalHospitalLoad,
			AccidentRiskScore:       p.Details.AccidentRiskScore,
			FleetTotal:              p.Details.FleetTotal,
			FleetAvailable:          p.Details.FleetAvailable,
			EnvironmentalFactors: EnvironmentFactors{
				WeatherCondition: string(env.WeatherCondition),
				WeatherObserved:  env.WeatherObserved,
				Temperature:      env.Temperature,
				Hour:             env.Hour,
				IsRushHour:       env.IsRushHour,
				IsWeekend:        env.IsWeekend,
				IsHoliday:        env.IsHoliday,
				Season:           string(env.Season),
			},
		},
	}
}

// FromZonePredictions converts a prediction list to its wire form.
func FromZonePredictions(ps []*prediction.ZonePrediction) []ZonePrediction {
	out := make([]ZonePrediction, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromZonePrediction(p))
	}
	return out
}
