//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/service"
	"github.com/guttosm/stacking-service/internal/testutil"
)

func mongoConfig(t *testing.T, uri string) config.DatabaseConfig {
	return config.DatabaseConfig{
		URI:                            uri,
		DatabaseName:                   testutil.SanitizeDBName(t.Name()),
		Enabled:                        true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

func TestInitializeDatabase_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database names for each subtest
	uri := testutil.GetSharedContainerURI()

	t.Run("initialize with enabled database", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(mongoConfig(t, uri))
		t.Cleanup(func() { _ = components.Close(ctx) })

		require.NotNil(t, components)
		assert.True(t, components.Persistent())
		assert.NotNil(t, components.Catalog)
		require.NotNil(t, components.CatalogCircuitBreaker)
		assert.NoError(t, components.DB.HealthCheck(ctx))

		stats := components.CatalogCircuitBreaker.GetStats()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)
	})

	t.Run("seed populates an empty collection once", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(mongoConfig(t, uri))
		t.Cleanup(func() { _ = components.Close(ctx) })
		catalog := service.NewGroupCatalogService(components.Catalog, nil)
		path := writeSeed(t, seedJSON)

		InitializeSeed(catalog, path)
		InitializeSeed(catalog, path)

		groups, err := components.Catalog.Load(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "Cadeiras", groups[0].Name)
		assert.Equal(t, model.StackingSingle, groups[0].StackingMode)
		assert.Equal(t, map[int64]int{20: 1, 10: 4}, groups[1].Required)
	})
}
