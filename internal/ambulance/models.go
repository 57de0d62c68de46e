// Package ambulance provides ambulance activity records and fleet status,
// the two inputs behind ambulance-pressure scoring and dispatch alerts.
package ambulance

import (
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// DispatchRisk is the risk flag attached to a single dispatch by the
// dispatching crew. Distinct from the computed zone pressure levels.
type DispatchRisk string

const (
	DispatchRiskLow    DispatchRisk = "Low"
	DispatchRiskMedium DispatchRisk = "Medium"
	DispatchRiskHigh   DispatchRisk = "High"
)

// ActivityRecord is one ambulance arrival/dispatch event. Immutable once
// created; the engine only reads time-windowed slices.
type ActivityRecord struct {
	ID           string
	Zone         zone.ID
	HospitalID   string
	PatientCount int
	Risk         DispatchRisk
	Timestamp    time.Time
}

// UnitStatus is the operational status of a fleet unit.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitDispatched  UnitStatus = "dispatched"
	UnitMaintenance UnitStatus = "maintenance"
)

// FleetUnit is one ambulance in the fleet roster.
type FleetUnit struct {
	ID     string
	Zone   zone.ID
	Status UnitStatus
}
