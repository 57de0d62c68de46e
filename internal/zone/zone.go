// Package zone defines the fixed set of geographic zones used as the unit
// of aggregation for all risk and alert computation.
package zone

import (
	"errors"
	"strings"
)

// ErrInvalidZone is returned when a zone name is outside the fixed set.
var ErrInvalidZone = errors.New("invalid zone")

// ID identifies one of the five fixed geographic zones.
type ID string

const (
	North   ID = "North"
	South   ID = "South"
	East    ID = "East"
	West    ID = "West"
	Central ID = "Central"
)

// all is the frozen enumeration order. Every component that iterates zones
// must use All; no component may invent its own ordering.
var all = [5]ID{North, South, East, West, Central}

// All returns the zones in enumeration order. The returned slice is a copy.
func All() []ID {
	zones := make([]ID, len(all))
	copy(zones, all[:])
	return zones
}

// Count is the number of zones in the fixed set.
const Count = len(all)

// Parse converts a zone name to an ID. Matching is case-insensitive.
func Parse(s string) (ID, error) {
	for _, z := range all {
		if strings.EqualFold(s, string(z)) {
			return z, nil
		}
	}
	return "", ErrInvalidZone
}

// Valid reports whether z is one of the fixed zones.
func Valid(z ID) bool {
	for _, known := range all {
		if z == known {
			return true
		}
	}
	return false
}

// String returns the zone name.
func (z ID) String() string {
	return string(z)
}
