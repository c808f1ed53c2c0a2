package examples

import (
	"errors"
	"iter"
	"slices"
	"sync"
)

// ErrNilExample is returned when a nil example is added to a Store.
var ErrNilExample = errors.New("example is nil")

// Store is an insertion-ordered collection of examples keyed by id.
//
// The store keeps its own copies: Get and All return copies, and Add writes
// a copy back. Updating an example is therefore Get, mutate, Add. Re-adding
// an existing id overwrites the entry in place without moving it.
type Store struct {
	mu    sync.RWMutex
	order []string
	items map[string]*Example
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		items: make(map[string]*Example),
	}
}

// Add inserts the example, or overwrites the entry with the same id.
func (s *Store) Add(ex *Example) error {
	if ex == nil {
		return ErrNilExample
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[ex.id]; !exists {
		s.order = append(s.order, ex.id)
	}
	s.items[ex.id] = ex.clone()
	return nil
}

// Remove deletes the example with the given id. Absent ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return
	}
	delete(s.items, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// Get returns a copy of the example with the given id.
// The second result is false if no such example exists.
func (s *Store) Get(id string) (*Example, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ex, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return ex.clone(), true
}

// Len returns the number of stored examples.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// All returns a sequence of (id, example) pairs in insertion order.
// Each range over the sequence sees the store as it is when iteration
// begins, so the sequence can be ranged over repeatedly.
func (s *Store) All() iter.Seq2[string, *Example] {
	return func(yield func(string, *Example) bool) {
		for _, ex := range s.snapshot() {
			if !yield(ex.id, ex) {
				return
			}
		}
	}
}

// Records returns the ordered record view of every example.
func (s *Store) Records() Index {
	snap := s.snapshot()
	idx := make(Index, len(snap))
	for i, ex := range snap {
		idx[i] = ex.Record()
	}
	return idx
}

func (s *Store) snapshot() []*Example {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Example, len(s.order))
	for i, id := range s.order {
		out[i] = s.items[id].clone()
	}
	return out
}
