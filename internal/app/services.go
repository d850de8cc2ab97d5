// Package app provides service initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/repository"
	"github.com/guttosm/stacking-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Matcher     *service.StackingMatcher
	ResultCache *service.ShardedCache
	Shipping    service.ShippingService
	Catalog     service.GroupCatalogService
}

// Stop releases background workers owned by the services.
func (s *ServiceComponents) Stop() {
	if s != nil && s.ResultCache != nil {
		s.ResultCache.Stop()
	}
}

// InitializeServices initializes business logic services on top of catalog.
func InitializeServices(cfg config.Config, catalog repository.GroupCatalogRepository) *ServiceComponents {
	defaults := model.Defaults{
		DimensionCM: cfg.Stacking.DimensionCM,
		WeightKG:    cfg.Stacking.WeightKG,
	}

	matcherOpts := []service.MatcherOption{service.WithDefaults(defaults)}
	if cfg.Stacking.Strategy != "" {
		strategy, err := service.ParseStrategy(cfg.Stacking.Strategy)
		if err != nil {
			log.Warn().Err(err).Str("strategy", cfg.Stacking.Strategy).Msg("Unknown stacking strategy - using default")
		} else {
			matcherOpts = append(matcherOpts, service.WithStrategy(strategy))
		}
	}
	if cfg.Stacking.BranchLimit > 0 {
		matcherOpts = append(matcherOpts, service.WithBranchLimit(cfg.Stacking.BranchLimit))
	}
	matcher := service.NewStackingMatcher(matcherOpts...)

	components := &ServiceComponents{Matcher: matcher}

	shippingOpts := []service.ShippingOption{service.WithCartDefaults(defaults)}
	if cfg.Cache.Size > 0 {
		components.ResultCache = service.NewShardedCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards)
		shippingOpts = append(shippingOpts, service.WithResultCache(components.ResultCache))
	}

	components.Shipping = service.NewShippingService(matcher, catalog, shippingOpts...)
	if components.ResultCache != nil {
		components.Catalog = service.NewGroupCatalogService(catalog, components.ResultCache)
	} else {
		components.Catalog = service.NewGroupCatalogService(catalog, nil)
	}

	log.Info().
		Str("strategy", matcher.Strategy().Name()).
		Int("cache_size", cfg.Cache.Size).
		Msg("Stacking services initialized")

	return components
}
