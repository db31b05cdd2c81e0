package store

import (
	"fmt"
	"iter"
	"sync"

	"github.com/crossplatform/resourcesvc/pkg/types"
)

// Store is a thread-safe in-memory resource store, keyed by resource id.
// Listing follows insertion order; overwriting a resource keeps its position.
type Store struct {
	mu       sync.RWMutex
	data     map[int32]types.Resource
	order    []int32
	revision uint64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		data: make(map[int32]types.Resource),
	}
}

// Get returns the resource stored under id. It fails with an error wrapping
// types.ErrNotFound when id is absent.
func (s *Store) Get(id int32) (types.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data[id]
	if !ok {
		return types.Resource{}, fmt.Errorf("%w: resource %d", types.ErrNotFound, id)
	}
	return r, nil
}

// Change describes the effect of a Put.
type Change int

const (
	Unchanged Change = iota
	Created
	Updated
)

func (c Change) String() string {
	switch c {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Put stores or replaces the resource for r.ID. Putting a resource equal to
// the stored one is a no-op, reports Unchanged and does not advance the
// revision.
func (s *Store) Put(r types.Resource) Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, exists := s.data[r.ID]
	if exists && old == r {
		return Unchanged
	}
	s.data[r.ID] = r
	s.revision++
	if exists {
		return Updated
	}
	s.order = append(s.order, r.ID)
	return Created
}

// All returns a sequence over every stored resource in insertion order.
// Nothing is read until iteration starts; each iteration works on a
// consistent copy taken at that moment, so the sequence can be ranged over
// repeatedly and the caller may call Put from inside the loop.
func (s *Store) All() iter.Seq[types.Resource] {
	return func(yield func(types.Resource) bool) {
		for _, r := range s.snapshot() {
			if !yield(r) {
				return
			}
		}
	}
}

// List returns all resources in insertion order. The result is never nil.
func (s *Store) List() []types.Resource {
	return s.snapshot()
}

// Snapshot returns all resources in insertion order together with the
// revision they were read at. Both come from a single critical section.
func (s *Store) Snapshot() ([]types.Resource, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(), s.revision
}

// Count returns the number of stored resources.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Revision returns a counter that advances on every Put that changes the
// stored state.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) snapshot() []types.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect()
}

// collect copies the stored resources in order. Callers hold s.mu.
func (s *Store) collect() []types.Resource {
	out := make([]types.Resource, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out
}
