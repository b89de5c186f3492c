package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDedupStore keeps notified stamps in redis with a TTL so the
// set does not grow forever. Stale stamps expiring is harmless: a
// follow-up that far in the past is outside the notification window
// anyway.
type RedisDedupStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDedupStore(rdb *redis.Client, ttl time.Duration) *RedisDedupStore {
	return &RedisDedupStore{rdb: rdb, ttl: ttl}
}

func key(userID, stamp string) string {
	return "mcrm:notified:" + userID + ":" + stamp
}

func (s *RedisDedupStore) Seen(ctx context.Context, userID, stamp string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(userID, stamp)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisDedupStore) MarkNotified(ctx context.Context, userID, stamp string, at time.Time) error {
	return s.rdb.Set(ctx, key(userID, stamp), at.UTC().Format(time.RFC3339Nano), s.ttl).Err()
}
