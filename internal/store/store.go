// Package store caches the remote key assignment collection and derives the
// views the screens render. The server snapshot is ground truth: after every
// successful fetch the cache is replaced wholesale, never merged or patched,
// so the assignment and dashboard screens always render one consistent
// snapshot.
package store

import (
	"sync"

	"github.com/keydesk/keydesk/internal/api"
)

// Counts holds the dashboard aggregate counters. Issued + Returned always
// equals Total.
type Counts struct {
	Total    int
	Issued   int
	Returned int
}

// Store holds the cached assignment collection. It is safe for concurrent
// use; the snapshot is replaced atomically so readers never observe a
// partially-updated collection.
type Store struct {
	mu          sync.RWMutex
	assignments []api.KeyAssignment
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Replace swaps in a new snapshot of the collection, copying the input so
// the caller cannot mutate the cache afterwards.
func (s *Store) Replace(assignments []api.KeyAssignment) {
	snapshot := make([]api.KeyAssignment, len(assignments))
	copy(snapshot, assignments)

	s.mu.Lock()
	s.assignments = snapshot
	s.mu.Unlock()
}

// Clear empties the cache. Used on logout and when a fetch fails.
func (s *Store) Clear() {
	s.mu.Lock()
	s.assignments = nil
	s.mu.Unlock()
}

// Snapshot returns a copy of the full cached collection in server order.
func (s *Store) Snapshot() []api.KeyAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]api.KeyAssignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

// Len returns the number of cached assignments.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assignments)
}

// Active returns the assignments currently in Issued state, preserving
// server order.
func (s *Store) Active() []api.KeyAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []api.KeyAssignment
	for _, a := range s.assignments {
		if a.Active() {
			active = append(active, a)
		}
	}
	return active
}

// Counts returns the aggregate counters over the cached collection.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := Counts{Total: len(s.assignments)}
	for _, a := range s.assignments {
		if a.Active() {
			c.Issued++
		} else {
			c.Returned++
		}
	}
	return c
}

// Filter returns the assignments whose staff ID or key ID contains term as
// a case-insensitive substring. The empty term returns the full collection.
func (s *Store) Filter(term string) []api.KeyAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []api.KeyAssignment
	for _, a := range s.assignments {
		if a.MatchesSearch(term) {
			matched = append(matched, a)
		}
	}
	return matched
}
