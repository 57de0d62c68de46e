package models

import (
	"github.com/zoneguard/zoneguard/internal/dashboard"
)

// Dashboard is the wire representation of the operations overview.
type Dashboard struct {
	GeneratedAt          Timestamp        `json:"generatedAt"`
	HospitalCount        int              `json:"hospitalCount"`
	AmbulanceActivity24h int              `json:"ambulanceActivity24h"`
	Accidents24h         int              `json:"accidents24h"`
	Fleet                FleetSummary     `json:"fleet"`
	HospitalLoads        []HospitalLoad   `json:"hospitalLoads"`
	Predictions          []ZonePrediction `json:"predictions"`
	Alerts               []Alert          `json:"alerts"`
	OverallPressure      string           `json:"overallPressure"`
}

// FleetSummary is the wire representation of the fleet breakdown.
type FleetSummary struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Dispatched  int `json:"dispatched"`
	Maintenance int `json:"maintenance"`
}

// HospitalLoad is the wire representation of one hospital's 24h load.
type HospitalLoad struct {
	HospitalID  string  `json:"hospitalId"`
	Name        string  `json:"name"`
	Zone        string  `json:"zone"`
	Capacity    int     `json:"capacity"`
	Patients24h int     `json:"patients24h"`
	LoadPercent float64 `json:"loadPercent"`
}

// FromDashboard converts the overview to its wire form.
func FromDashboard(ov *dashboard.Overview) Dashboard {
	loads := make([]HospitalLoad, 0, len(ov.HospitalLoads))
	for _, l := range ov.HospitalLoads {
		loads = append(loads, HospitalLoad{
			HospitalID:  l.HospitalID,
			Name:        l.Name,
			Zone:        l.Zone.String(),
			Capacity:    l.Capacity,
			Patients24h: l.Patients24h,
			LoadPercent: l.LoadPercent,
		})
	}
	return Dashboard{
		GeneratedAt:          Timestamp(ov.GeneratedAt),
		HospitalCount:        ov.HospitalCount,
		AmbulanceActivity24h: ov.AmbulanceActivity24h,
		Accidents24h:         ov.Accidents24h,
		Fleet: FleetSummary{
			Total:       ov.Fleet.Total,
			Available:   ov.Fleet.Available,
			Dispatched:  ov.Fleet.Dispatched,
			Maintenance: ov.Fleet.Maintenance,
		},
		HospitalLoads:   loads,
		Predictions:     FromZonePredictions(ov.Predictions),
		Alerts:          FromAlerts(ov.Alerts),
		OverallPressure: string(ov.OverallPressure),
	}
}
