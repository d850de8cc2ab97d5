package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdempotencyCache(t *testing.T, ttl time.Duration, opts ...IdempotencyCacheOption) (*IdempotencyCache, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	cache := NewIdempotencyCache(ttl, append(opts, WithIdempotencyClock(clock.Now))...)
	t.Cleanup(cache.Stop)
	return cache, clock
}

func TestIdempotencyCache_Lifecycle(t *testing.T) {
	cache, _ := newTestIdempotencyCache(t, time.Hour)

	_, res := cache.Begin("k", "body-a")
	require.Equal(t, reservedNew, res)

	_, res = cache.Begin("k", "body-a")
	assert.Equal(t, reservedInFlight, res)

	_, res = cache.Begin("k", "body-b")
	assert.Equal(t, reservedMismatch, res)

	cache.Complete("k", &cachedResponse{StatusCode: 201, Body: []byte(`{"id":"g-1"}`), RequestHash: "body-a"})

	stored, res := cache.Begin("k", "body-a")
	require.Equal(t, reservedReplay, res)
	assert.Equal(t, 201, stored.StatusCode)
	assert.False(t, stored.Pending)
}

func TestIdempotencyCache_Release(t *testing.T) {
	cache, _ := newTestIdempotencyCache(t, time.Hour)

	cache.Begin("pending", "h")
	cache.Begin("done", "h")
	cache.Complete("done", &cachedResponse{StatusCode: 200, RequestHash: "h"})

	cache.Release("pending")
	cache.Release("done")

	assert.Equal(t, 1, cache.Len(), "completed entries survive Release")
	_, res := cache.Begin("pending", "h")
	assert.Equal(t, reservedNew, res)
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	cache, clock := newTestIdempotencyCache(t, time.Minute)

	cache.Begin("k", "h")
	cache.Complete("k", &cachedResponse{StatusCode: 200, RequestHash: "h"})

	clock.Advance(2 * time.Minute)

	_, res := cache.Begin("k", "other-body")
	assert.Equal(t, reservedNew, res, "expired keys can be reused with any body")
}

func TestIdempotencyCache_CapacityEvictsOldest(t *testing.T) {
	cache, clock := newTestIdempotencyCache(t, time.Hour, WithIdempotencyCapacity(2))

	for _, key := range []string{"first", "second", "third"} {
		cache.Begin(key, "h")
		cache.Complete(key, &cachedResponse{StatusCode: 200, RequestHash: "h"})
		clock.Advance(time.Second)
	}

	assert.Equal(t, 2, cache.Len())
	_, res := cache.Begin("first", "h")
	assert.Equal(t, reservedNew, res)
}

func TestIdempotencyCache_DefaultTTL(t *testing.T) {
	cache := NewIdempotencyCache(0)
	defer cache.Stop()

	assert.Equal(t, IdempotencyKeyTTL, cache.ttl)
}

func TestIdempotencyCache_StopTwice(t *testing.T) {
	cache := NewIdempotencyCache(time.Minute)
	cache.Stop()
	assert.NotPanics(t, cache.Stop)
}
