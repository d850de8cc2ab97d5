//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/stacking-service/internal/circuitbreaker"
	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openCatalogDB connects to a fresh database on the shared container.
func openCatalogDB(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openCatalogDB(t)

	t.Run("connection successful", func(t *testing.T) {
		assert.NotNil(t, db.Client)
		assert.NotNil(t, db.Database)
		assert.NotNil(t, db.StackingGroups)
		assert.Equal(t, StackingGroupsCollection, db.StackingGroups.Name())
	})

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("catalog order index", func(t *testing.T) {
		specs, err := db.StackingGroups.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)

		var names []string
		for _, spec := range specs {
			names = append(names, spec.Name)
		}
		assert.Contains(t, names, "catalog_order")
	})
}

func TestNewMongoDB_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := NewMongoDB("mongodb://127.0.0.1:1", "unreachable",
		WithConnectTimeout(300*time.Millisecond), WithoutCompression())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongodb")
}

func TestMongoGroupCatalog_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openCatalogDB(t)
	catalog := NewMongoGroupCatalog(db)

	t.Run("empty catalog", func(t *testing.T) {
		groups, err := catalog.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, groups)
	})

	var second *model.GroupDefinition
	t.Run("save assigns ids and round trips the required map", func(t *testing.T) {
		g := testGroup("", 1)
		g.Required = map[int64]int{10: 2, 20: 1}
		saved, err := catalog.Save(ctx, g)
		require.NoError(t, err)
		require.NotEmpty(t, saved.ID)
		second = saved

		got, err := catalog.Get(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, map[int64]int{10: 2, 20: 1}, got.Required)
		assert.Equal(t, model.StackingMultiple, got.StackingMode)
		assert.Equal(t, 20.0, got.BaseHeight)
	})

	t.Run("load orders by position", func(t *testing.T) {
		_, err := catalog.Save(ctx, testGroup("", 0))
		require.NoError(t, err)

		groups, err := catalog.Load(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, 0, groups[0].Position)
		assert.Equal(t, second.ID, groups[1].ID)
	})

	t.Run("replace keeps creation time", func(t *testing.T) {
		update := *second
		update.CreatedAt = time.Time{}
		update.Name = "updated"

		replaced, err := catalog.Save(ctx, update)
		require.NoError(t, err)
		assert.Equal(t, "updated", replaced.Name)
		assert.WithinDuration(t, second.CreatedAt, replaced.CreatedAt, time.Millisecond)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, catalog.Delete(ctx, second.ID))
		assert.ErrorIs(t, catalog.Delete(ctx, second.ID), ErrGroupNotFound)

		_, err := catalog.Get(ctx, second.ID)
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})
}

func TestGroupCatalogWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openCatalogDB(t)
	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "test-catalog",
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})
	wrapped := NewGroupCatalogWithCircuitBreaker(NewMongoGroupCatalog(db), cb)

	_, err := wrapped.Save(ctx, testGroup("", 0))
	require.NoError(t, err)

	groups, err := wrapped.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.True(t, cb.GetStats().IsHealthy)

	// a closed client makes every call fail and opens the circuit
	require.NoError(t, db.Close(ctx))
	_, err = wrapped.Load(ctx)
	assert.Error(t, err)
	assert.True(t, cb.IsOpen())

	_, err = wrapped.Load(ctx)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}
