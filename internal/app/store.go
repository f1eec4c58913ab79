package app

import (
	"sync"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

// Store holds the most recently fetched set of listings. It is derived state:
// every change event replaces the whole set, nothing mutates it in place, and
// it does not survive a restart.
type Store struct {
	mu       sync.RWMutex
	listings []models.Listing
	loaded   bool
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a new result set wholesale.
func (s *Store) ReplaceAll(listings []models.Listing) {
	s.mu.Lock()
	s.listings = listings
	s.loaded = true
	s.mu.Unlock()
}

// Snapshot returns a copy of the current set, preserving order.
func (s *Store) Snapshot() []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Loaded reports whether an initial fetch has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}
