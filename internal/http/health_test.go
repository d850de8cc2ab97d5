package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stacking-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(h *HealthHandler, path string) (int, map[string]interface{}) {
	router := gin.New()
	h.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestHealthHandler_Liveness(t *testing.T) {
	code, body := probe(NewHealthHandler(), "/healthz")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthHandler_Readiness(t *testing.T) {
	openBreaker := func() *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(circuitbreaker.Config{Name: "mongodb", FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Hour})
		_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
		return cb
	}

	tests := []struct {
		name       string
		setup      func(*HealthHandler)
		wantStatus int
		wantState  string
		wantCheck  string
	}{
		{
			name:       "no dependencies",
			setup:      func(h *HealthHandler) {},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantCheck:  "service",
		},
		{
			name: "healthy checker",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("mongodb", HealthCheckerFunc(func(ctx context.Context) error { return nil }))
			},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantCheck:  "mongodb",
		},
		{
			name: "failing checker",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("mongodb", HealthCheckerFunc(func(ctx context.Context) error { return errors.New("ping failed") }))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
			wantCheck:  "mongodb",
		},
		{
			name: "closed circuit",
			setup: func(h *HealthHandler) {
				h.RegisterCircuitBreaker("mongodb", circuitbreaker.New(circuitbreaker.DefaultConfig()))
			},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantCheck:  "mongodb_circuit",
		},
		{
			name: "open circuit",
			setup: func(h *HealthHandler) {
				h.RegisterCircuitBreaker("mongodb", openBreaker())
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
			wantCheck:  "mongodb_circuit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler()
			tt.setup(h)

			code, body := probe(h, "/readyz")

			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantState, body["status"])
			checks, ok := body["checks"].(map[string]interface{})
			require.True(t, ok)
			assert.Contains(t, checks, tt.wantCheck)
		})
	}
}

func TestHealthHandler_CheckerHonorsTimeout(t *testing.T) {
	h := NewHealthHandler()
	h.checkTimeout = 10 * time.Millisecond
	h.RegisterChecker("slow", HealthCheckerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	code, body := probe(h, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, context.DeadlineExceeded.Error(), checks["slow"])
}

func TestHealthHandler_ChecksRunInParallel(t *testing.T) {
	h := NewHealthHandler()
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	for _, name := range []string{"primary", "replica"} {
		h.RegisterChecker(name, HealthCheckerFunc(func(ctx context.Context) error {
			started <- struct{}{}
			<-release
			return nil
		}))
	}

	go func() {
		<-started
		<-started
		close(release)
	}()

	code, body := probe(h, "/readyz")

	assert.Equal(t, http.StatusOK, code)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["primary"])
	assert.Equal(t, "ok", checks["replica"])
}
