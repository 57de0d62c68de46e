package weather

import (
	"context"
	"sync"
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewInMemoryRepository creates a new in-memory weather repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		snapshots: make(map[string]*Snapshot),
	}
}

func snapshotKey(z zone.ID, day time.Time) string {
	return string(z) + ":" + day.Format("2006-01-02")
}

// FindForDay retrieves the snapshot for a zone and calendar day.
func (r *InMemoryRepository) FindForDay(_ context.Context, z zone.ID, day time.Time) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.snapshots[snapshotKey(z, day)]
	if !ok {
		return nil, ErrNoSnapshot
	}

	cpy := *snap
	return &cpy, nil
}

// Upsert stores the snapshot for its (zone, day).
func (r *InMemoryRepository) Upsert(_ context.Context, snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *snap
	r.snapshots[snapshotKey(snap.Zone, snap.Day)] = &cpy
	return nil
}
