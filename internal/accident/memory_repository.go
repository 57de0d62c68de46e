package accident

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
	records []*Record
}

// NewInMemoryRepository creates a new in-memory accident repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Find retrieves accident records for a zone in [from, to).
func (r *InMemoryRepository) Find(_ context.Context, z zone.ID, from, to time.Time) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Record
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

// Insert stores one accident record.
func (r *InMemoryRepository) Insert(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *rec
	r.records = append(r.records, &cpy)
	return nil
}
