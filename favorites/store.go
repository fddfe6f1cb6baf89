// Package favorites holds the set of movies a user has marked during the
// current session. One Store is created at startup and shared by every view.
package favorites

import (
	"cmp"
	"slices"
	"sync"
)

// Store is a concurrency-safe set of movie identifiers.
// Membership is boolean: toggling an identifier twice restores its state.
type Store struct {
	mu   sync.RWMutex
	ids  map[string]uint64 // id -> insertion sequence
	next uint64
}

// New creates an empty store
func New() *Store {
	return &Store{
		ids: make(map[string]uint64),
	}
}

// Toggle flips the membership of id and returns the new state
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}

	s.next++
	s.ids[id] = s.next
	return true
}

// IsFavorite reports whether id is in the set
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[id]
	return ok
}

// IDs returns the favorited identifiers in the order they were added
func (s *Store) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Compare(s.ids[a], s.ids[b])
	})
	s.mu.RUnlock()

	return ids
}

// Len returns the number of favorites
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids)
}
