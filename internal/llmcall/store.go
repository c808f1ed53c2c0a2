package llmcall

import (
	"sync"
	"time"
)

// DefaultCapacity is the number of calls kept when no capacity is given.
const DefaultCapacity = 200

// Store keeps the most recent calls in memory, oldest evicted first.
type Store struct {
	mu       sync.RWMutex
	capacity int
	calls    []*Call
}

// QueryFilter specifies filters for listing calls.
type QueryFilter struct {
	Engine  string
	Success *bool
	After   *time.Time
	Before  *time.Time
	Limit   int
	Offset  int
}

// NewStore creates a store holding at most capacity calls.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Record appends a call, evicting the oldest when full.
func (s *Store) Record(call *Call) {
	if s == nil || call == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, call)
	if over := len(s.calls) - s.capacity; over > 0 {
		clear(s.calls[:over])
		s.calls = s.calls[over:]
	}
}

// Get retrieves a single call by ID. Returns nil if not found.
func (s *Store) Get(id string) *Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.calls {
		if c.ID == id {
			cp := *c
			return &cp
		}
	}
	return nil
}

// List returns calls matching the filter, newest first.
func (s *Store) List(filter QueryFilter) []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Call, 0)
	skipped := 0
	for i := len(s.calls) - 1; i >= 0; i-- {
		c := s.calls[i]
		if !filter.matches(c) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, *c)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out
}

// Len returns the number of stored calls.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.calls)
}

func (f QueryFilter) matches(c *Call) bool {
	if f.Engine != "" && c.Engine != f.Engine {
		return false
	}
	if f.Success != nil && c.Success != *f.Success {
		return false
	}
	if f.After != nil && !c.Timestamp.After(*f.After) {
		return false
	}
	if f.Before != nil && !c.Timestamp.Before(*f.Before) {
		return false
	}
	return true
}
