package hospital

import (
	"context"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Repository defines read access to hospital reference data.
type Repository interface {
	// Get retrieves a hospital by ID.
	// Returns ErrHospitalNotFound if no such hospital exists.
	Get(ctx context.Context, id string) (*Hospital, error)

	// List retrieves all hospitals.
	List(ctx context.Context) ([]*Hospital, error)

	// ListByZone retrieves the hospitals in one zone.
	ListByZone(ctx context.Context, z zone.ID) ([]*Hospital, error)

	// Upsert inserts or replaces a hospital record.
	Upsert(ctx context.Context, h *Hospital) error
}
