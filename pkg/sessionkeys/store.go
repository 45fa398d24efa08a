// Package sessionkeys holds the per-identity symmetric keys established by the
// key exchange. Keys live in memory only and are lost on restart.
package sessionkeys

import (
	"sync"
	"sync/atomic"
)

// Store maps an identity to its current session key. Each identity has its own
// slot and lock, so writers for different identities never contend. A later
// Put for the same identity replaces the earlier key entirely.
//
// Store is safe for concurrent use. The zero value is ready to use.
type Store struct {
	slots sync.Map // map[string]*slot
	size  atomic.Int64
}

type slot struct {
	mu  sync.RWMutex
	key []byte
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

func (s *Store) slot(id string) *slot {
	if v, ok := s.slots.Load(id); ok {
		return v.(*slot)
	}
	v, _ := s.slots.LoadOrStore(id, &slot{})
	return v.(*slot)
}

// Put stores a copy of key for id, replacing any existing key.
func (s *Store) Put(id string, key []byte) {
	sl := s.slot(id)
	cp := make([]byte, len(key))
	copy(cp, key)

	sl.mu.Lock()
	if sl.key == nil {
		s.size.Add(1)
	}
	sl.key = cp
	sl.mu.Unlock()
}

// Get returns a copy of the key for id.
func (s *Store) Get(id string) ([]byte, bool) {
	v, ok := s.slots.Load(id)
	if !ok {
		return nil, false
	}
	sl := v.(*slot)

	sl.mu.RLock()
	defer sl.mu.RUnlock()
	if sl.key == nil {
		return nil, false
	}
	return append([]byte(nil), sl.key...), true
}

// Delete forgets the key for id. The slot itself is retained so concurrent
// writers keep a consistent view of it.
func (s *Store) Delete(id string) bool {
	v, ok := s.slots.Load(id)
	if !ok {
		return false
	}
	sl := v.(*slot)

	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.key == nil {
		return false
	}
	clear(sl.key)
	sl.key = nil
	s.size.Add(-1)
	return true
}

// Len reports how many identities currently hold a key.
func (s *Store) Len() int {
	return int(s.size.Load())
}
