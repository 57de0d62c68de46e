package weather

import (
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// fallbackConditions is the fixed list the deterministic fallback indexes
// into. Order matters; changing it changes fallback output for every day.
var fallbackConditions = [7]Condition{
	ConditionClear,
	ConditionCloudy,
	ConditionRainy,
	ConditionStormy,
	ConditionFoggy,
	ConditionSnowy,
	ConditionWindy,
}

// Fallback returns the pseudo-snapshot for a (zone, day) with no stored
// observation. It is a pure function of day-of-month and zone-name length,
// not a forecast; the point is that scoring never stalls on missing
// weather and that tests reproduce the same value for the same inputs.
func Fallback(z zone.ID, day time.Time) *Snapshot {
	dom := day.Day()
	idx := (dom + len(z.String())) % len(fallbackConditions)

	return &Snapshot{
		Zone:        z,
		Day:         day,
		Condition:   fallbackConditions[idx],
		Temperature: float64(18 + dom%15),
	}
}
