package app

import (
	"testing"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

func TestStoreReplaceAll(t *testing.T) {
	s := NewStore()
	if s.Loaded() {
		t.Fatal("new store should not report loaded")
	}

	s.ReplaceAll([]models.Listing{{ID: "a"}, {ID: "b"}})
	if !s.Loaded() {
		t.Fatal("store should report loaded after first replace")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	// A replace swaps the whole set, it never merges.
	s.ReplaceAll([]models.Listing{{ID: "c"}})
	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != "c" {
		t.Fatalf("Snapshot = %v, want single listing c", snap)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Listing{{ID: "a", Title: "original"}})

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	if got := s.Snapshot()[0].Title; got != "original" {
		t.Fatalf("snapshot mutation leaked into store: %q", got)
	}
}
