// Package ingest consumes record messages from Pub/Sub and writes them into
// the zone record stores.
package ingest

import "time"

// Message kinds accepted by the ingestor.
const (
	KindAmbulanceActivity = "ambulance_activity"
	KindAccident          = "accident"
	KindFleetUnit         = "fleet_unit"
	KindWeatherSnapshot   = "weather_snapshot"
	KindHospital          = "hospital"
)

// RecordMessage is the envelope for all ingested records. Kind selects which
// payload field is set.
type RecordMessage struct {
	Kind string `json:"kind"`

	AmbulanceActivity *AmbulanceActivityPayload `json:"ambulance_activity,omitempty"`
	Accident          *AccidentPayload          `json:"accident,omitempty"`
	FleetUnit         *FleetUnitPayload         `json:"fleet_unit,omitempty"`
	WeatherSnapshot   *WeatherSnapshotPayload   `json:"weather_snapshot,omitempty"`
	Hospital          *HospitalPayload          `json:"hospital,omitempty"`
}

// AmbulanceActivityPayload is one dispatch record.
type AmbulanceActivityPayload struct {
	ID           string    `json:"id"`
	Zone         string    `json:"zone"`
	HospitalID   string    `json:"hospital_id"`
	PatientCount int       `json:"patient_count"`
	Risk         string    `json:"risk"`
	Timestamp    time.Time `json:"timestamp"`
}

// AccidentPayload is one accident record.
type AccidentPayload struct {
	ID          string    `json:"id"`
	Zone        string    `json:"zone"`
	Severity    string    `json:"severity"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// FleetUnitPayload is the current status of one fleet unit.
type FleetUnitPayload struct {
	ID     string `json:"id"`
	Zone   string `json:"zone"`
	Status string `json:"status"`
}

// WeatherSnapshotPayload is one observed weather snapshot.
type WeatherSnapshotPayload struct {
	Zone        string    `json:"zone"`
	Day         time.Time `json:"day"`
	Condition   string    `json:"condition"`
	Temperature float64   `json:"temperature_c"`
}

// HospitalPayload is one hospital reference record.
type HospitalPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Zone     string `json:"zone"`
	Capacity int    `json:"capacity"`
}
