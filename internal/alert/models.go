package alert

import (
	"errors"
	"time"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/zone"
)

// ErrAlertNotFound is returned when an alert ID does not match any alert in
// the current derivation pass.
var ErrAlertNotFound = errors.New("alert not found")

// Severity is the operational severity of a derived alert. It is a separate
// scale from accident record severity.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

var severityRanks = map[Severity]int{
	SeverityCritical: 3,
	SeverityWarning:  2,
	SeverityInfo:     1,
}

// Rank returns the sort weight of the severity, higher meaning more urgent.
// Unknown severities rank below INFO.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// Type identifies the condition an alert was derived from.
type Type string

const (
	TypeEDOverloadRisk    Type = "ED_OVERLOAD_RISK"
	TypeAccidentHotspot   Type = "ACCIDENT_HOTSPOT"
	TypeHighRiskDispatch  Type = "HIGH_RISK_DISPATCH"
	TypeAmbulanceOverload Type = "AMBULANCE_OVERLOAD"
	TypeSevereWeather     Type = "SEVERE_WEATHER"
	TypeRushHour          Type = "RUSH_HOUR"
	TypeHighRiskZone      Type = "HIGH_RISK_ZONE"
)

// TypeInfo describes an alert type for the catalogue endpoint.
type TypeInfo struct {
	Type        Type
	Severity    Severity
	Description string
}

// TypeCatalogue lists every alert type with its typical severity. Some types
// can be emitted at other severities depending on the underlying record; the
// catalogue reflects the common case.
func TypeCatalogue() []TypeInfo {
	return []TypeInfo{
		{TypeEDOverloadRisk, SeverityCritical, "Average emergency department load in the zone is at a high level."},
		{TypeHighRiskZone, SeverityCritical, "Zone shows both high ED pressure and high accident risk."},
		{TypeHighRiskDispatch, SeverityCritical, "An ambulance dispatch in the zone was flagged high risk."},
		{TypeAccidentHotspot, SeverityWarning, "Accident activity in the zone, per incident or in aggregate."},
		{TypeAmbulanceOverload, SeverityWarning, "Ambulance dispatch volume in the zone exceeds sustainable levels."},
		{TypeSevereWeather, SeverityWarning, "Severe weather conditions are affecting the zone."},
		{TypeRushHour, SeverityInfo, "Rush hour traffic is expected to slow response times."},
	}
}

// Status tracks whether an alert has been acknowledged within the current
// derivation pass. Alerts are recomputed from the underlying data on every
// read, so acknowledgements are not persisted.
type Status string

const (
	StatusActive       Status = "active"
	StatusAcknowledged Status = "acknowledged"
)

// Alert is a single derived alert. IDs are stable within one derivation pass
// over unchanged data, but are not persisted.
type Alert struct {
	ID          string
	Type        Type
	Zone        zone.ID
	Severity    Severity
	Message     string
	Description string
	Timestamp   time.Time
	Status      Status
	Details     map[string]any
}

// AcknowledgedAlert is the result of acknowledging a derived alert.
type AcknowledgedAlert struct {
	Alert          Alert
	AcknowledgedBy string
	AcknowledgedAt time.Time
}

// severityForIncident maps an accident record's severity onto the alert
// severity scale.
func severityForIncident(s accident.Severity) Severity {
	switch s {
	case accident.SeverityCritical:
		return SeverityCritical
	case accident.SeverityHigh, accident.SeverityMedium:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
