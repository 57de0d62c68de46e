package weather

import (
	"context"
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Repository defines access to stored weather snapshots.
type Repository interface {
	// FindForDay retrieves the snapshot for a zone and calendar day.
	// Returns ErrNoSnapshot when none is stored.
	FindForDay(ctx context.Context, z zone.ID, day time.Time) (*Snapshot, error)

	// Upsert stores the snapshot for its (zone, day), replacing any
	// existing one.
	Upsert(ctx context.Context, snap *Snapshot) error
}
