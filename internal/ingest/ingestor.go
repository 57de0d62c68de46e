package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/hospital"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/zone"
)

// ErrInvalidMessage marks messages that can never be ingested. Callers should
// ack and drop these rather than redeliver them.
var ErrInvalidMessage = errors.New("invalid record message")

var dispatchRisks = map[string]ambulance.DispatchRisk{
	string(ambulance.DispatchRiskLow):    ambulance.DispatchRiskLow,
	string(ambulance.DispatchRiskMedium): ambulance.DispatchRiskMedium,
	string(ambulance.DispatchRiskHigh):   ambulance.DispatchRiskHigh,
}

var severities = map[string]accident.Severity{
	string(accident.SeverityLow):      accident.SeverityLow,
	string(accident.SeverityMedium):   accident.SeverityMedium,
	string(accident.SeverityHigh):     accident.SeverityHigh,
	string(accident.SeverityCritical): accident.SeverityCritical,
}

var unitStatuses = map[string]ambulance.UnitStatus{
	string(ambulance.UnitAvailable):   ambulance.UnitAvailable,
	string(ambulance.UnitDispatched):  ambulance.UnitDispatched,
	string(ambulance.UnitMaintenance): ambulance.UnitMaintenance,
}

var conditions = map[string]weather.Condition{
	string(weather.ConditionClear):  weather.ConditionClear,
	string(weather.ConditionCloudy): weather.ConditionCloudy,
	string(weather.ConditionRainy):  weather.ConditionRainy,
	string(weather.ConditionStormy): weather.ConditionStormy,
	string(weather.ConditionFoggy):  weather.ConditionFoggy,
	string(weather.ConditionSnowy):  weather.ConditionSnowy,
	string(weather.ConditionWindy):  weather.ConditionWindy,
}

// IngestorConfig carries the stores the ingestor writes to.
type IngestorConfig struct {
	Ambulance ambulance.Repository
	Accidents accident.Repository
	Weather   weather.Repository
	Hospitals hospital.Repository
	Logger    zerolog.Logger
}

// Ingestor validates record messages and writes them into the stores.
type Ingestor struct {
	ambulance ambulance.Repository
	accidents accident.Repository
	weather   weather.Repository
	hospitals hospital.Repository
	logger    zerolog.Logger
}

func NewIngestor(cfg IngestorConfig) *Ingestor {
	return &Ingestor{
		ambulance: cfg.Ambulance,
		accidents: cfg.Accidents,
		weather:   cfg.Weather,
		hospitals: cfg.Hospitals,
		logger:    cfg.Logger,
	}
}

// Ingest dispatches one record message to its store. Validation failures
// return ErrInvalidMessage; store failures return the store's error.
func (i *Ingestor) Ingest(ctx context.Context, msg *RecordMessage) error {
	switch msg.Kind {
	case KindAmbulanceActivity:
		return i.ingestActivity(ctx, msg.AmbulanceActivity)
	case KindAccident:
		return i.ingestAccident(ctx, msg.Accident)
	case KindFleetUnit:
		return i.ingestFleetUnit(ctx, msg.FleetUnit)
	case KindWeatherSnapshot:
		return i.ingestWeather(ctx, msg.WeatherSnapshot)
	case KindHospital:
		return i.ingestHospital(ctx, msg.Hospital)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidMessage, msg.Kind)
	}
}

func (i *Ingestor) ingestActivity(ctx context.Context, p *AmbulanceActivityPayload) error {
	if p == nil {
		return fmt.Errorf("%w: missing ambulance_activity payload", ErrInvalidMessage)
	}
	z, err := zone.Parse(p.Zone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	risk, ok := dispatchRisks[p.Risk]
	if !ok {
		return fmt.Errorf("%w: unknown dispatch risk %q", ErrInvalidMessage, p.Risk)
	}
	if p.ID == "" || p.Timestamp.IsZero() {
		return fmt.Errorf("%w: ambulance_activity requires id and timestamp", ErrInvalidMessage)
	}

	return i.ambulance.InsertActivity(ctx, &ambulance.ActivityRecord{
		ID:           p.ID,
		Zone:         z,
		HospitalID:   p.HospitalID,
		PatientCount: p.PatientCount,
		Risk:         risk,
		Timestamp:    p.Timestamp.UTC(),
	})
}

func (i *Ingestor) ingestAccident(ctx context.Context, p *AccidentPayload) error {
	if p == nil {
		return fmt.Errorf("%w: missing accident payload", ErrInvalidMessage)
	}
	z, err := zone.Parse(p.Zone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	sev, ok := severities[p.Severity]
	if !ok {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidMessage, p.Severity)
	}
	if p.ID == "" || p.Timestamp.IsZero() {
		return fmt.Errorf("%w: accident requires id and timestamp", ErrInvalidMessage)
	}

	return i.accidents.Insert(ctx, &accident.Record{
		ID:          p.ID,
		Zone:        z,
		Severity:    sev,
		Description: p.Description,
		Timestamp:   p.Timestamp.UTC(),
	})
}

func (i *Ingestor) ingestFleetUnit(ctx context.Context, p *FleetUnitPayload) error {
	if p == nil {
		return fmt.Errorf("%w: missing fleet_unit payload", ErrInvalidMessage)
	}
	z, err := zone.Parse(p.Zone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	status, ok := unitStatuses[p.Status]
	if !ok {
		return fmt.Errorf("%w: unknown unit status %q", ErrInvalidMessage, p.Status)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: fleet_unit requires id", ErrInvalidMessage)
	}

	return i.ambulance.UpsertUnit(ctx, &ambulance.FleetUnit{
		ID:     p.ID,
		Zone:   z,
		Status: status,
	})
}

func (i *Ingestor) ingestWeather(ctx context.Context, p *WeatherSnapshotPayload) error {
	if p == nil {
		return fmt.Errorf("%w: missing weather_snapshot payload", ErrInvalidMessage)
	}
	z, err := zone.Parse(p.Zone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	cond, ok := conditions[p.Condition]
	if !ok {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidMessage, p.Condition)
	}
	if p.Day.IsZero() {
		return fmt.Errorf("%w: weather_snapshot requires day", ErrInvalidMessage)
	}

	return i.weather.Upsert(ctx, &weather.Snapshot{
		Zone:        z,
		Day:         weather.DayOf(p.Day),
		Condition:   cond,
		Temperature: p.Temperature,
	})
}

func (i *Ingestor) ingestHospital(ctx context.Context, p *HospitalPayload) error {
	if p == nil {
		return fmt.Errorf("%w: missing hospital payload", ErrInvalidMessage)
	}
	z, err := zone.Parse(p.Zone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: hospital requires id", ErrInvalidMessage)
	}

	return i.hospitals.Upsert(ctx, &hospital.Hospital{
		ID:       p.ID,
		Name:     p.Name,
		Zone:     z,
		Capacity: p.Capacity,
	})
}
