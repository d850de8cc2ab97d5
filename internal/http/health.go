package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stacking-service/internal/circuitbreaker"
)

const defaultCheckTimeout = 2 * time.Second

// HealthChecker is a dependency probed by /readyz.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckerFunc lets a plain function act as a HealthChecker.
type HealthCheckerFunc func(ctx context.Context) error

// HealthCheck calls f(ctx).
func (f HealthCheckerFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	mu           sync.RWMutex
	checkers     map[string]HealthChecker
	breakers     map[string]*circuitbreaker.CircuitBreaker
	checkTimeout time.Duration
}

// NewHealthHandler returns a handler with nothing registered, which is
// always ready.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:     make(map[string]HealthChecker),
		breakers:     make(map[string]*circuitbreaker.CircuitBreaker),
		checkTimeout: defaultCheckTimeout,
	}
}

// RegisterChecker adds a dependency to ping on every readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	h.checkers[name] = checker
	h.mu.Unlock()
}

// RegisterCircuitBreaker makes readiness fail while cb is not healthy.
// The breaker shows up in the report as name + "_circuit".
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.mu.Lock()
	h.breakers[name] = cb
	h.mu.Unlock()
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness godoc
// @Summary     Liveness probe
// @Description Returns OK if the service is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness godoc
// @Summary     Readiness probe
// @Description Returns OK if all dependencies are healthy and no circuit breaker is open. With the in-memory catalog there is nothing to probe and the service is always ready.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	checks := h.pingAll(c.Request.Context())
	ready := true
	for _, result := range checks {
		if result != "ok" {
			ready = false
		}
	}

	for name, cb := range h.breakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats
		ready = ready && stats.IsHealthy
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

// pingAll runs every checker in parallel under one deadline and reports
// "ok" or the error text per checker. Callers hold h.mu.
func (h *HealthHandler) pingAll(parent context.Context) map[string]interface{} {
	ctx, cancel := context.WithTimeout(parent, h.checkTimeout)
	defer cancel()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]interface{}, len(h.checkers)+len(h.breakers))
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			result := "ok"
			if err := checker.HealthCheck(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()
	return results
}
