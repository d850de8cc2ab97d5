package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/i18n"
	"github.com/guttosm/stacking-service/internal/metrics"
)

const defaultRateLimitShards = 16

// RateLimitDecision is the outcome of one Allow call.
type RateLimitDecision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type rateWindow struct {
	start time.Time
	used  int
}

type rateShard struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
}

// RateLimiter is a fixed-window request limiter. Identifiers are spread
// over independently locked shards.
type RateLimiter struct {
	limit  int
	window time.Duration
	shards []*rateShard
	mask   uint32
	now    func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimitShards sets the shard count, rounded up to a power of two.
func WithRateLimitShards(n int) RateLimiterOption {
	return func(rl *RateLimiter) {
		if n <= 0 {
			return
		}
		size := 1
		for size < n {
			size *= 2
		}
		rl.shards = make([]*rateShard, size)
	}
}

// WithRateLimitClock replaces time.Now, mainly for tests.
func WithRateLimitClock(now func() time.Time) RateLimiterOption {
	return func(rl *RateLimiter) {
		if now != nil {
			rl.now = now
		}
	}
}

// NewRateLimiter allows limit requests per identifier in every window.
// Call Stop to end the background sweep.
func NewRateLimiter(limit int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	rl := &RateLimiter{
		limit:  limit,
		window: window,
		shards: make([]*rateShard, defaultRateLimitShards),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}
	for i := range rl.shards {
		rl.shards[i] = &rateShard{windows: make(map[string]*rateWindow)}
	}
	rl.mask = uint32(len(rl.shards) - 1)

	go rl.sweep()
	return rl
}

func (rl *RateLimiter) shard(id string) *rateShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return rl.shards[h.Sum32()&rl.mask]
}

// Allow consumes one request for id.
func (rl *RateLimiter) Allow(id string) RateLimitDecision {
	s := rl.shard(id)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[id]
	if !ok || !now.Before(w.start.Add(rl.window)) {
		w = &rateWindow{start: now}
		s.windows[id] = w
	}

	reset := w.start.Add(rl.window)
	if w.used >= rl.limit {
		return RateLimitDecision{Allowed: false, Remaining: 0, ResetAt: reset}
	}
	w.used++
	return RateLimitDecision{Allowed: true, Remaining: rl.limit - w.used, ResetAt: reset}
}

// PerIP limits requests by client IP.
func (rl *RateLimiter) PerIP() gin.HandlerFunc {
	return rl.middleware("ip", func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// PerClient limits requests by API key, falling back to the client IP for
// anonymous callers. It must run after APIKeyAuth.
func (rl *RateLimiter) PerClient() gin.HandlerFunc {
	return rl.middleware("client", clientIdentifier)
}

func (rl *RateLimiter) middleware(scope string, identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := rl.Allow(identify(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			metrics.RecordRateLimited(scope)
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(d.ResetAt.Sub(rl.now()))))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

// retryAfterSeconds rounds up and never returns less than one second.
func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// clientIdentifier returns a fingerprint of the API key, or the client IP.
// Raw keys never end up in limiter state.
func clientIdentifier(c *gin.Context) string {
	if key := GetAPIKey(c); key != "" {
		sum := sha256.Sum256([]byte(key))
		return "key:" + hex.EncodeToString(sum[:8])
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.purgeExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// purgeExpired drops windows that ended before now.
func (rl *RateLimiter) purgeExpired() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for id, w := range s.windows {
			if !now.Before(w.start.Add(rl.window)) {
				delete(s.windows, id)
			}
		}
		s.mu.Unlock()
	}
}

// Len returns the number of tracked identifiers.
func (rl *RateLimiter) Len() int {
	n := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		n += len(s.windows)
		s.mu.Unlock()
	}
	return n
}

// Stop ends the background sweep. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}
