package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryDedupStore is the redis-less fallback: per-process stamps with
// the same TTL semantics. Also what the worker tests run against.
type MemoryDedupStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	stamps map[string]time.Time
}

func NewMemoryDedupStore(ttl time.Duration) *MemoryDedupStore {
	return &MemoryDedupStore{
		ttl:    ttl,
		stamps: make(map[string]time.Time),
	}
}

func (s *MemoryDedupStore) Seen(_ context.Context, userID, stamp string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, ok := s.stamps[key(userID, stamp)]
	if !ok {
		return false, nil
	}
	if s.ttl > 0 && time.Since(at) > s.ttl {
		delete(s.stamps, key(userID, stamp))
		return false, nil
	}
	return true, nil
}

func (s *MemoryDedupStore) MarkNotified(_ context.Context, userID, stamp string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamps[key(userID, stamp)] = at
	return nil
}
