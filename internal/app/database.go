// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/circuitbreaker"
	"github.com/guttosm/stacking-service/internal/metrics"
	"github.com/guttosm/stacking-service/internal/repository"
)

// catalogBreakerName identifies the group catalog breaker in logs, metrics and readiness.
const catalogBreakerName = "mongodb-stacking-groups"

// DatabaseComponents holds the group catalog store and its guards.
// DB and CatalogCircuitBreaker are nil when the catalog lives in memory.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	Catalog               repository.GroupCatalogRepository
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
}

// Persistent reports whether the catalog is backed by MongoDB.
func (d *DatabaseComponents) Persistent() bool {
	return d != nil && d.DB != nil
}

// Close releases the MongoDB connection, if any.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if !d.Persistent() {
		return nil
	}
	return d.DB.Close(ctx)
}

// InitializeDatabase connects the group catalog. When MongoDB is disabled
// or unreachable the catalog falls back to an in-memory store.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		log.Info().Msg("MongoDB disabled - using in-memory group catalog")
		return memoryDatabase()
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName,
		repository.WithPoolSize(cfg.MinPoolSize, cfg.MaxPoolSize),
		repository.WithConnectTimeout(cfg.ConnectTimeout),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing with in-memory group catalog")
		return memoryDatabase()
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	catalogCB := newCatalogCircuitBreaker(cfg)
	catalog := repository.NewGroupCatalogWithCircuitBreaker(repository.NewMongoGroupCatalog(db), catalogCB)

	return &DatabaseComponents{
		DB:                    db,
		Catalog:               catalog,
		CatalogCircuitBreaker: catalogCB,
	}
}

func memoryDatabase() *DatabaseComponents {
	return &DatabaseComponents{Catalog: repository.NewMemoryGroupCatalog()}
}

func newCatalogCircuitBreaker(cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             catalogBreakerName,
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		OnStateChange: func(name string, to circuitbreaker.State) {
			log.Warn().Str("circuit_breaker", name).Str("state", to.String()).Msg("Circuit breaker state changed")
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}
