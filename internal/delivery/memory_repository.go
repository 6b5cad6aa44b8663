package delivery

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	listings map[string]Listing
}

// NewMemoryRepository builds an in-memory listing store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{listings: make(map[string]Listing)}
}

func (r *memoryRepository) Create(_ context.Context, listing Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.listings[listing.ID]; exists {
		return errors.New("listing exists")
	}
	r.listings[listing.ID] = listing
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.listings[id]
	if !ok {
		return Listing{}, ErrListingNotFound
	}
	return listing, nil
}
