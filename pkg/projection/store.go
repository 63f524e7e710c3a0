package projection

import (
	"sync"

	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/photo"
)

// Store holds the current projection for callers that receive snapshots on
// one goroutine and read from another.
type Store struct {
	mu      sync.RWMutex
	current Projection
}

// NewStore returns a store seeded with an empty projection.
func NewStore(model category.Model, policy category.Policy) *Store {
	return &Store{current: New(model, policy)}
}

// OnSnapshot rebuilds the projection from records and returns it.
func (s *Store) OnSnapshot(records []photo.Record) Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.current.Apply(records)
	return s.current
}

// Current returns the latest projection.
func (s *Store) Current() Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
