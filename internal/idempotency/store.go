// Package idempotency tracks already-processed submission keys so a
// same-key resubmission can be rejected without re-sending notifications.
package idempotency

import "sync"

// Store records idempotency keys accepted by this process. Implementations
// are process-local: keys are lost on restart, and two horizontally scaled
// instances do not share keys, so concurrent duplicates across instances can
// both succeed.
type Store interface {
	// Seen reports whether the key was already marked.
	Seen(key string) bool

	// Mark records the key. Marking an already-seen key is a no-op.
	Mark(key string)
}

// MemoryStore is the in-process Store implementation.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

// Seen implements Store.
func (s *MemoryStore) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok
}

// Mark implements Store.
func (s *MemoryStore) Mark(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[key] = struct{}{}
}
