package middleware

import (
	"sync"
	"time"
)

const defaultIdempotencyCapacity = 10000

// cachedResponse is a stored 2xx answer. Pending marks a reservation whose
// request is still running.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Location    string
	Body        []byte
	RequestHash string
	Pending     bool
	storedAt    time.Time
}

// reservation is the outcome of IdempotencyCache.Begin.
type reservation int

const (
	reservedNew reservation = iota
	reservedReplay
	reservedMismatch
	reservedInFlight
)

// IdempotencyCache holds responses by scoped idempotency key until ttl
// passes. It keeps at most capacity entries, dropping the oldest first.
type IdempotencyCache struct {
	mu       sync.Mutex
	entries  map[string]*cachedResponse
	ttl      time.Duration
	capacity int
	now      func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// IdempotencyCacheOption configures an IdempotencyCache.
type IdempotencyCacheOption func(*IdempotencyCache)

// WithIdempotencyCapacity bounds the number of stored keys.
func WithIdempotencyCapacity(n int) IdempotencyCacheOption {
	return func(c *IdempotencyCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithIdempotencyClock replaces time.Now, mainly for tests.
func WithIdempotencyClock(now func() time.Time) IdempotencyCacheOption {
	return func(c *IdempotencyCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewIdempotencyCache starts a cache and its expiry sweep. Call Stop on
// shutdown.
func NewIdempotencyCache(ttl time.Duration, opts ...IdempotencyCacheOption) *IdempotencyCache {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	c := &IdempotencyCache{
		entries:  make(map[string]*cachedResponse),
		ttl:      ttl,
		capacity: defaultIdempotencyCapacity,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.sweep()
	return c
}

// Begin looks key up and, when nothing live is stored, reserves it for
// the caller. The stored response is returned for reservedReplay.
func (c *IdempotencyCache) Begin(key, requestHash string) (*cachedResponse, reservation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if entry, ok := c.entries[key]; ok && !c.expired(entry, now) {
		switch {
		case entry.RequestHash != requestHash:
			return nil, reservedMismatch
		case entry.Pending:
			return nil, reservedInFlight
		default:
			return entry, reservedReplay
		}
	}

	c.makeRoom(now)
	c.entries[key] = &cachedResponse{RequestHash: requestHash, Pending: true, storedAt: now}
	return nil, reservedNew
}

// Complete stores resp under a key reserved with Begin.
func (c *IdempotencyCache) Complete(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp.Pending = false
	resp.storedAt = c.now()
	c.entries[key] = resp
}

// Release drops a pending reservation so the key can be retried.
func (c *IdempotencyCache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok && entry.Pending {
		delete(c.entries, key)
	}
}

// Len returns the number of stored keys, pending and expired ones included.
func (c *IdempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stop ends the expiry sweep. Safe to call more than once.
func (c *IdempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *IdempotencyCache) expired(entry *cachedResponse, now time.Time) bool {
	return now.Sub(entry.storedAt) > c.ttl
}

// makeRoom frees a slot when the cache is full. Callers hold c.mu.
func (c *IdempotencyCache) makeRoom(now time.Time) {
	if len(c.entries) < c.capacity {
		return
	}
	c.purgeLocked(now)
	if len(c.entries) < c.capacity {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldest) {
			oldestKey, oldest = key, entry.storedAt
		}
	}
	delete(c.entries, oldestKey)
}

func (c *IdempotencyCache) purgeLocked(now time.Time) {
	for key, entry := range c.entries {
		if c.expired(entry, now) {
			delete(c.entries, key)
		}
	}
}

func (c *IdempotencyCache) sweep() {
	interval := c.ttl / 4
	if interval > 10*time.Minute {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.purgeLocked(c.now())
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}
