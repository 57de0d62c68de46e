package accident

import (
	"context"
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Repository defines access to accident records.
type Repository interface {
	// Find retrieves accident records for a zone in [from, to), ordered by
	// timestamp ascending.
	Find(ctx context.Context, z zone.ID, from, to time.Time) ([]*Record, error)

	// Insert stores one accident record.
	Insert(ctx context.Context, rec *Record) error
}
