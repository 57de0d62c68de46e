package alert

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/prediction"
	"github.com/zoneguard/zoneguard/internal/timectx"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

const (
	recentWindow     = 24 * time.Hour
	historicalWindow = 7 * 24 * time.Hour

	// overloadDispatchCount is the 24h dispatch volume at which a zone's
	// ambulance fleet is considered overloaded.
	overloadDispatchCount = 12
)

// ServiceConfig carries the dependencies for the alert deriver.
type ServiceConfig struct {
	Ambulance ambulance.Repository
	Accidents accident.Repository
	Weather   *weather.Service
	Clock     clockwork.Clock
	Calendar  timectx.Calendar
	Logger    zerolog.Logger
}

// Service derives alerts from the current state of the activity, accident and
// weather streams. Alerts are recomputed on every call and never stored.
type Service struct {
	ambulance ambulance.Repository
	accidents accident.Repository
	weather   *weather.Service
	clock     clockwork.Clock
	calendar  timectx.Calendar
	logger    zerolog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		ambulance: cfg.Ambulance,
		accidents: cfg.Accidents,
		weather:   cfg.Weather,
		clock:     clock,
		calendar:  cfg.Calendar,
		logger:    cfg.Logger,
	}
}

// CurrentAlerts derives alerts for every zone concurrently and returns them
// sorted by severity, most urgent first. Zone order breaks severity ties.
func (s *Service) CurrentAlerts(ctx context.Context) ([]*Alert, error) {
	zones := zone.All()
	now := s.clock.Now().UTC()

	results := make([][]*Alert, len(zones))
	errs := make([]error, len(zones))

	var wg sync.WaitGroup
	for i, z := range zones {
		wg.Add(1)
		go func(i int, z zone.ID) {
			defer wg.Done()
			results[i], errs[i] = s.deriveForZone(ctx, z, now)
		}(i, z)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			s.logger.Error().Err(err).Str("zone", zones[i].String()).Msg("alert derivation failed")
			return nil, err
		}
	}

	var alerts []*Alert
	for _, za := range results {
		alerts = append(alerts, za...)
	}
	sortBySeverity(alerts)
	return alerts, nil
}

// AlertsByZone derives the current alerts for a single zone.
func (s *Service) AlertsByZone(ctx context.Context, z zone.ID) ([]*Alert, error) {
	if !zone.Valid(z) {
		return nil, fmt.Errorf("%w: %q", zone.ErrInvalidZone, z)
	}
	alerts, err := s.deriveForZone(ctx, z, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	sortBySeverity(alerts)
	return alerts, nil
}

// Acknowledge marks the alert with the given ID acknowledged. The alert set is
// recomputed from current data; if the ID no longer derives, ErrAlertNotFound
// is returned. The acknowledgement is not persisted and does not survive the
// next derivation pass.
func (s *Service) Acknowledge(ctx context.Context, alertID, acknowledgedBy string) (*AcknowledgedAlert, error) {
	alerts, err := s.CurrentAlerts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range alerts {
		if a.ID != alertID {
			continue
		}
		ack := *a
		ack.Status = StatusAcknowledged
		return &AcknowledgedAlert{
			Alert:          ack,
			AcknowledgedBy: acknowledgedBy,
			AcknowledgedAt: s.clock.Now().UTC(),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrAlertNotFound, alertID)
}

func (s *Service) deriveForZone(ctx context.Context, z zone.ID, now time.Time) ([]*Alert, error) {
	recentFrom := now.Add(-recentWindow)
	historicalFrom := now.Add(-historicalWindow)

	recentLogs, err := s.ambulance.FindActivity(ctx, z, recentFrom, now)
	if err != nil {
		return nil, fmt.Errorf("recent activity for %s: %w", z, err)
	}
	historicalLogs, err := s.ambulance.FindActivity(ctx, z, historicalFrom, recentFrom)
	if err != nil {
		return nil, fmt.Errorf("historical activity for %s: %w", z, err)
	}
	recentAccidents, err := s.accidents.Find(ctx, z, recentFrom, now)
	if err != nil {
		return nil, fmt.Errorf("recent accidents for %s: %w", z, err)
	}
	historicalAccidents, err := s.accidents.Find(ctx, z, historicalFrom, recentFrom)
	if err != nil {
		return nil, fmt.Errorf("historical accidents for %s: %w", z, err)
	}
	snapshot, _, err := s.weather.ForDay(ctx, z, weather.DayOf(now))
	if err != nil {
		return nil, fmt.Errorf("weather for %s: %w", z, err)
	}
	tc := timectx.From(now, s.calendar)

	// Hour-granularity suffix keeps derived IDs stable across reads within
	// the same hour when the underlying data has not changed.
	bucket := now.Format("2006010215")

	var alerts []*Alert

	edHigh := false
	avgLoad := prediction.HospitalAverageLoad(recentLogs)
	historicalLoad := prediction.HospitalAverageLoad(historicalLogs)
	if prediction.ClassifyEDPressure(avgLoad, historicalLoad) == prediction.LevelHigh {
		edHigh = true
		alerts = append(alerts, &Alert{
			ID:        fmt.Sprintf("ed_overload_risk:%s:%s", z, bucket),
			Type:      TypeEDOverloadRisk,
			Zone:      z,
			Severity:  SeverityCritical,
			Message:   fmt.Sprintf("Emergency departments in %s zone are under high load", z),
			Timestamp: now,
			Status:    StatusActive,
			Details: map[string]any{
				"average_load":    avgLoad,
				"historical_load": historicalLoad,
			},
		})
	}

	for _, rec := range recentAccidents {
		alerts = append(alerts, &Alert{
			ID:          fmt.Sprintf("accident_hotspot:%s:%s", z, rec.ID),
			Type:        TypeAccidentHotspot,
			Zone:        z,
			Severity:    severityForIncident(rec.Severity),
			Message:     fmt.Sprintf("%s severity accident reported in %s zone", rec.Severity, z),
			Description: rec.Description,
			Timestamp:   rec.Timestamp,
			Status:      StatusActive,
		})
	}

	for _, rec := range recentLogs {
		if rec.Risk != ambulance.DispatchRiskHigh {
			continue
		}
		alerts = append(alerts, &Alert{
			ID:        fmt.Sprintf("high_risk_dispatch:%s:%s", z, rec.ID),
			Type:      TypeHighRiskDispatch,
			Zone:      z,
			Severity:  SeverityCritical,
			Message:   fmt.Sprintf("High risk ambulance dispatch in %s zone", z),
			Timestamp: rec.Timestamp,
			Status:    StatusActive,
			Details: map[string]any{
				"patient_count": rec.PatientCount,
				"hospital_id":   rec.HospitalID,
			},
		})
	}

	// Aggregate accident risk uses the raw severity-weighted score with the
	// trend penalty, without weather or time-of-day multipliers.
	accidentHigh := aggregateAccidentScore(recentAccidents, historicalAccidents) >= 10
	if accidentHigh {
		alerts = append(alerts, &Alert{
			ID:        fmt.Sprintf("accident_hotspot:%s:aggregate:%s", z, bucket),
			Type:      TypeAccidentHotspot,
			Zone:      z,
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("Elevated accident activity across %s zone", z),
			Timestamp: now,
			Status:    StatusActive,
			Details: map[string]any{
				"accident_count": len(recentAccidents),
			},
		})
	}

	if len(recentLogs) >= overloadDispatchCount {
		alerts = append(alerts, &Alert{
			ID:        fmt.Sprintf("ambulance_overload:%s:%s", z, bucket),
			Type:      TypeAmbulanceOverload,
			Zone:      z,
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("Ambulance dispatch volume in %s zone is unusually high", z),
			Timestamp: now,
			Status:    StatusActive,
			Details: map[string]any{
				"dispatch_count": len(recentLogs),
			},
		})
	}

	if snapshot.Condition.IsSevere() {
		alerts = append(alerts, &Alert{
			ID:        fmt.Sprintf("severe_weather:%s:%s", z, bucket),
			Type:      TypeSevereWeather,
			Zone:      z,
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("%s conditions in %s zone may slow response times", snapshot.Condition, z),
			Timestamp: now,
			Status:    StatusActive,
			Details: map[string]any{
				"condition": string(snapshot.Condition),
			},
		})
	}

	if tc.IsRushHour {
		alerts = append(alerts, &Alert{
			ID:        fmt.Sprintf("rush_hour:%s:%s", z, bucket),
			Type:      TypeRushHour,
			Zone:      z,
			Severity:  SeverityInfo,
			Message:   fmt.Sprintf("Rush hour traffic expected in %s zone", z),
			Timestamp: now,
			Status:    StatusActive,
		})
	}

	if edHigh && accidentHigh {
		alerts = append(alerts, &Alert{
			ID:        fmt.Sprintf("high_risk_zone:%s:%s", z, bucket),
			Type:      TypeHighRiskZone,
			Zone:      z,
			Severity:  SeverityCritical,
			Message:   fmt.Sprintf("%s zone shows high ED pressure combined with high accident risk", z),
			Timestamp: now,
			Status:    StatusActive,
		})
	}

	return alerts, nil
}

// aggregateAccidentScore is the zone-wide accident score used for the
// aggregate hotspot check: severity-weighted, with the trend penalty applied
// when recent activity outpaces the weekly baseline.
func aggregateAccidentScore(recent, historical []*accident.Record) float64 {
	score := prediction.AccidentScore(recent)
	if historicalScore := prediction.AccidentScore(historical); score > historicalScore*1.2 {
		score *= 1.3
	}
	return score
}

func sortBySeverity(alerts []*Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
	})
}
