// Package weather provides per-zone daily weather snapshots with a
// deterministic fallback for days with no stored or live observation.
package weather

import (
	"errors"
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Weather errors.
var (
	ErrNoSnapshot          = errors.New("no weather snapshot for day")
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// Condition represents the general weather condition for a day.
type Condition string

const (
	ConditionClear  Condition = "Clear"
	ConditionCloudy Condition = "Cloudy"
	ConditionRainy  Condition = "Rainy"
	ConditionStormy Condition = "Stormy"
	ConditionFoggy  Condition = "Foggy"
	ConditionSnowy  Condition = "Snowy"
	ConditionWindy  Condition = "Windy"
)

// RiskMultiplier returns the accident-risk multiplier for the condition.
// Unknown conditions are neutral.
func (c Condition) RiskMultiplier() float64 {
	switch c {
	case ConditionRainy:
		return 1.5
	case ConditionStormy:
		return 2.0
	case ConditionFoggy:
		return 1.3
	case ConditionSnowy:
		return 1.8
	case ConditionWindy:
		return 1.2
	default:
		return 1.0
	}
}

// IsSevere reports whether the condition warrants a severe-weather alert.
func (c Condition) IsSevere() bool {
	return c == ConditionStormy || c == ConditionFoggy || c == ConditionSnowy
}

// Snapshot is the weather for one (zone, day). At most one per pair.
type Snapshot struct {
	Zone        zone.ID
	Day         time.Time
	Condition   Condition
	Temperature float64
}

// DayOf normalizes an instant to the UTC calendar day snapshots are keyed
// by. Every reader and writer of snapshots must key through this so that
// non-UTC clocks agree on which day a snapshot belongs to.
func DayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
