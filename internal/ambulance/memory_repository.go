package ambulance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []*ActivityRecord
	units   map[string]*FleetUnit
}

// NewInMemoryRepository creates a new in-memory ambulance repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		units: make(map[string]*FleetUnit),
	}
}

// FindActivity retrieves activity records for a zone in [from, to).
func (r *InMemoryRepository) FindActivity(_ context.Context, z zone.ID, from, to time.Time) ([]*ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*ActivityRecord
	for _, rec := range r.records {
		if rec.Zone != z {
			continue
		}
		if rec.Timestamp.Before(from) || !rec.Timestamp.Before(to) {
			continue
		}
		cpy := *rec
		out = append(out, &cpy)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// InsertActivity stores one activity record.
func (r *InMemoryRepository) InsertActivity(_ context.Context, rec *ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *rec
	r.records = append(r.records, &cpy)
	return nil
}

// CountFleet counts fleet units in a zone, optionally filtered by status.
func (r *InMemoryRepository) CountFleet(_ context.Context, z zone.ID, status UnitStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, unit := range r.units {
		if unit.Zone != z {
			continue
		}
		if status != "" && unit.Status != status {
			continue
		}
		count++
	}

	return count, nil
}

// UpsertUnit creates or updates a fleet unit's status.
func (r *InMemoryRepository) UpsertUnit(_ context.Context, unit *FleetUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *unit
	r.units[unit.ID] = &cpy
	return nil
}
