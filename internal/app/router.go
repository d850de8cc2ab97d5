// Package app provides router configuration.
package app

import (
	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/http"
	"github.com/guttosm/stacking-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// Stop releases the background workers of the rate limiter and idempotency cache.
func (r *RouterComponents) Stop() {
	if r == nil {
		return
	}
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	if r.Config.IdempotencyCache != nil {
		r.Config.IdempotencyCache.Stop()
	}
}

// InitializeRouter builds the health handler and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	if cfg.Auth.Enabled && activeKeys(cfg.Auth.APIKeys) == 0 {
		log.Warn().Int("configured", len(cfg.Auth.APIKeys)).
			Msg("Auth enabled without an active API key - every /api request will be rejected")
	}

	if db.Persistent() {
		healthHandler.RegisterChecker("mongodb", db.DB)
		if db.CatalogCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_stacking_groups", db.CatalogCircuitBreaker)
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		EnableIdempotency: true,
		IdempotencyCache:  middleware.NewIdempotencyCache(middleware.IdempotencyKeyTTL),
		ShippingService:   services.Shipping,
		CatalogService:    services.Catalog,
	}
	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

func activeKeys(keys map[string]bool) int {
	n := 0
	for k, enabled := range keys {
		if enabled && k != "" {
			n++
		}
	}
	return n
}
