package ambulance

import (
	"context"
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Repository defines access to ambulance activity and fleet status.
type Repository interface {
	// FindActivity retrieves activity records for a zone in [from, to),
	// ordered by timestamp ascending.
	FindActivity(ctx context.Context, z zone.ID, from, to time.Time) ([]*ActivityRecord, error)

	// InsertActivity stores one activity record.
	InsertActivity(ctx context.Context, rec *ActivityRecord) error

	// CountFleet counts fleet units in a zone. An empty status counts the
	// whole roster.
	CountFleet(ctx context.Context, z zone.ID, status UnitStatus) (int, error)

	// UpsertUnit creates or updates a fleet unit's status.
	UpsertUnit(ctx context.Context, unit *FleetUnit) error
}
