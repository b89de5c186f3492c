package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestMemoryDedupStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDedupStore(time.Hour)

	seen, err := store.Seen(ctx, "u-1", "c-1_2026-08-29T12:03:00Z")
	assert.NoError(t, err)
	assert.False(t, seen)

	assert.NoError(t, store.MarkNotified(ctx, "u-1", "c-1_2026-08-29T12:03:00Z", time.Now()))

	seen, err = store.Seen(ctx, "u-1", "c-1_2026-08-29T12:03:00Z")
	assert.NoError(t, err)
	assert.True(t, seen)

	// Same stamp, different user: independent.
	seen, err = store.Seen(ctx, "u-2", "c-1_2026-08-29T12:03:00Z")
	assert.NoError(t, err)
	assert.False(t, seen)
}

func TestMemoryDedupStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDedupStore(time.Minute)

	assert.NoError(t, store.MarkNotified(ctx, "u-1", "old", time.Now().Add(-2*time.Minute)))

	seen, err := store.Seen(ctx, "u-1", "old")
	assert.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisDedupStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisDedupStore(rdb, time.Hour)

	ctx := context.Background()
	stamp := "c-9_2026-08-29T12:03:00Z"

	seen, err := store.Seen(ctx, "u-1", stamp)
	assert.NoError(t, err)
	assert.False(t, seen)

	assert.NoError(t, store.MarkNotified(ctx, "u-1", stamp, time.Now()))

	seen, err = store.Seen(ctx, "u-1", stamp)
	assert.NoError(t, err)
	assert.True(t, seen)

	// TTL applied to the key.
	mr.FastForward(2 * time.Hour)
	seen, err = store.Seen(ctx, "u-1", stamp)
	assert.NoError(t, err)
	assert.False(t, seen)
}
