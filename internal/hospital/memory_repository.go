package hospital

import (
	"context"
	"sort"
	"sync"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu        sync.RWMutex
	hospitals map[string]*Hospital
}

// NewInMemoryRepository creates a new in-memory hospital repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		hospitals: make(map[string]*Hospital),
	}
}

// Put adds or replaces a hospital.
func (r *InMemoryRepository) Put(h *Hospital) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cpy := *h
	r.hospitals[h.ID] = &cpy
}

// Upsert inserts or replaces a hospital record.
func (r *InMemoryRepository) Upsert(_ context.Context, h *Hospital) error {
	r.Put(h)
	return nil
}

// Get retrieves a hospital by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hospitals[id]
	if !ok {
		return nil, ErrHospitalNotFound
	}

	cpy := *h
	return &cpy, nil
}

// List retrieves all hospitals.
func (r *InMemoryRepository) List(_ context.Context) ([]*Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var hospitals []*Hospital
	for _, h := range r.hospitals {
		cpy := *h
		hospitals = append(hospitals, &cpy)
	}

	sort.Slice(hospitals, func(i, j int) bool { return hospitals[i].Name < hospitals[j].Name })
	return hospitals, nil
}

// ListByZone retrieves the hospitals in one zone.
func (r *InMemoryRepository) ListByZone(_ context.Context, z zone.ID) ([]*Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var hospitals []*Hospital
	for _, h := range r.hospitals {
		if h.Zone == z {
			cpy := *h
			hospitals = append(hospitals, &cpy)
		}
	}

	sort.Slice(hospitals, func(i, j int) bool { return hospitals[i].Name < hospitals[j].Name })
	return hospitals, nil
}
