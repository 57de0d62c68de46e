// Package hospital provides the hospital reference data used to attribute
// ambulance activity and to size emergency-department load.
package hospital

import (
	"errors"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Repository errors.
var (
	ErrHospitalNotFound = errors.New("hospital not found")
)

// Hospital is a reference entity; the engine only reads it.
type Hospital struct {
	ID       string
	Name     string
	Zone     zone.ID
	Capacity int
}
