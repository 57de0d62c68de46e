// Package dashboard composes predictions, alerts and raw counts into a single
// operations overview. It adds no scoring of its own.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/alert"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/hospital"
	"github.com/zoneguard/zoneguard/internal/prediction"
	"github.com/zoneguard/zoneguard/internal/zone"
)

const recentWindow = 24 * time.Hour

// PressureLevel is the system-wide pressure classification shown at the top
// of the overview.
type PressureLevel string

const (
	PressureNoData   PressureLevel = "NO DATA"
	PressureCritical PressureLevel = "CRITICAL"
	PressureWarning  PressureLevel = "WARNING"
	PressureNormal   PressureLevel = "NORMAL"
)

// HospitalLoad is the 24h patient load of one hospital against its capacity.
type HospitalLoad struct {
	HospitalID  string
	Name        string
	Zone        zone.ID
	Capacity    int
	Patients24h int
	LoadPercent float64
}

// FleetSummary is the city-wide fleet breakdown by unit status.
type FleetSummary struct {
	Total       int
	Available   int
	Dispatched  int
	Maintenance int
}

// Overview is the full dashboard payload.
type Overview struct {
	GeneratedAt          time.Time
	HospitalCount        int
	AmbulanceActivity24h int
	Accidents24h         int
	Fleet                FleetSummary
	HospitalLoads        []HospitalLoad
	Predictions          []*prediction.ZonePrediction
	Alerts               []*alert.Alert
	OverallPressure      PressureLevel
}

// ServiceConfig carries the dependencies for the dashboard aggregator.
type ServiceConfig struct {
	Predictions *prediction.Service
	Alerts      *alert.Service
	Hospitals   hospital.Repository
	Ambulance   ambulance.Repository
	Accidents   accident.Repository
	Clock       clockwork.Clock
	Logger      zerolog.Logger
}

type Service struct {
	predictions *prediction.Service
	alerts      *alert.Service
	hospitals   hospital.Repository
	ambulance   ambulance.Repository
	accidents   accident.Repository
	clock       clockwork.Clock
	logger      zerolog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		predictions: cfg.Predictions,
		alerts:      cfg.Alerts,
		hospitals:   cfg.Hospitals,
		ambulance:   cfg.Ambulance,
		accidents:   cfg.Accidents,
		clock:       clock,
		logger:      cfg.Logger,
	}
}

// Overview assembles the dashboard from fresh reads. Nothing is cached; every
// call recomputes predictions and alerts from the current data.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	now := s.clock.Now().UTC()
	from := now.Add(-recentWindow)

	hospitals, err := s.hospitals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hospitals: %w", err)
	}

	predictions, err := s.predictions.Predictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("predictions: %w", err)
	}
	alerts, err := s.alerts.CurrentAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("alerts: %w", err)
	}

	var activityCount, accidentCount int
	patientsByHospital := make(map[string]int)
	var fleet FleetSummary

	for _, z := range zone.All() {
		logs, err := s.ambulance.FindActivity(ctx, z, from, now)
		if err != nil {
			return nil, fmt.Errorf("activity for %s: %w", z, err)
		}
		activityCount += len(logs)
		for _, rec := range logs {
			patientsByHospital[rec.HospitalID] += rec.PatientCount
		}

		accidents, err := s.accidents.Find(ctx, z, from, now)
		if err != nil {
			return nil, fmt.Errorf("accidents for %s: %w", z, err)
		}
		accidentCount += len(accidents)

		zoneFleet, err := s.fleetForZone(ctx, z)
		if err != nil {
			return nil, err
		}
		fleet.Total += zoneFleet.Total
		fleet.Available += zoneFleet.Available
		fleet.Dispatched += zoneFleet.Dispatched
		fleet.Maintenance += zoneFleet.Maintenance
	}

	loads := make([]HospitalLoad, 0, len(hospitals))
	for _, h := range hospitals {
		patients := patientsByHospital[h.ID]
		load := HospitalLoad{
			HospitalID:  h.ID,
			Name:        h.Name,
			Zone:        h.Zone,
			Capacity:    h.Capacity,
			Patients24h: patients,
		}
		if h.Capacity > 0 {
			load.LoadPercent = float64(patients) / float64(h.Capacity) * 100
		}
		loads = append(loads, load)
	}

	return &Overview{
		GeneratedAt:          now,
		HospitalCount:        len(hospitals),
		AmbulanceActivity24h: activityCount,
		Accidents24h:         accidentCount,
		Fleet:                fleet,
		HospitalLoads:        loads,
		Predictions:          predictions,
		Alerts:               alerts,
		OverallPressure:      overallPressure(len(hospitals), predictions, alerts),
	}, nil
}

func (s *Service) fleetForZone(ctx context.Context, z zone.ID) (FleetSummary, error) {
	var out FleetSummary
	var err error
	if out.Total, err = s.ambulance.CountFleet(ctx, z, ""); err != nil {
		return out, fmt.Errorf("fleet total for %s: %w", z, err)
	}
	if out.Available, err = s.ambulance.CountFleet(ctx, z, ambulance.UnitAvailable); err != nil {
		return out, fmt.Errorf("fleet available for %s: %w", z, err)
	}
	if out.Dispatched, err = s.ambulance.CountFleet(ctx, z, ambulance.UnitDispatched); err != nil {
		return out, fmt.Errorf("fleet dispatched for %s: %w", z, err)
	}
	if out.Maintenance, err = s.ambulance.CountFleet(ctx, z, ambulance.UnitMaintenance); err != nil {
		return out, fmt.Errorf("fleet maintenance for %s: %w", z, err)
	}
	return out, nil
}

// overallPressure classifies the whole system. More than one high risk zone
// or any critical alert is CRITICAL; a single high risk zone or more than
// five alerts is WARNING.
func overallPressure(hospitalCount int, predictions []*prediction.ZonePrediction, alerts []*alert.Alert) PressureLevel {
	if hospitalCount == 0 {
		return PressureNoData
	}

	highRiskZones := 0
	for _, p := range predictions {
		if p.OverallRisk == prediction.LevelHigh {
			highRiskZones++
		}
	}
	criticalAlert := false
	for _, a := range alerts {
		if a.Severity == alert.SeverityCritical {
			criticalAlert = true
			break
		}
	}

	switch {
	case highRiskZones > 1 || criticalAlert:
		return PressureCritical
	case highRiskZones >= 1 || len(alerts) > 5:
		return PressureWarning
	default:
		return PressureNormal
	}
}
