//go:build integration

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/testutil"
)

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uri := testutil.GetSharedContainerURI()

	cfg := config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{Size: 100, TTL: time.Minute, Shards: 4},
		Database: config.DatabaseConfig{
			URI:                            uri,
			DatabaseName:                   testutil.SanitizeDBName(t.Name()),
			Enabled:                        true,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Stacking: config.StackingConfig{Strategy: "min_volume", DimensionCM: 10, WeightKG: 1},
		Log:      config.LogConfig{Level: "error"},
	}

	application := InitializeApp(cfg)
	t.Cleanup(func() { _ = application.Close(context.Background()) })

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, req)
		return w
	}

	t.Run("readiness reports mongodb", func(t *testing.T) {
		w := do(http.MethodGet, "/readyz", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
		assert.Contains(t, w.Body.String(), "mongodb_stacking_groups_circuit")
	})

	t.Run("created group drives the simulation", func(t *testing.T) {
		w := do(http.MethodPost, "/api/groups", map[string]any{
			"name":          "Kit",
			"required":      map[string]int{"1": 1, "2": 1},
			"stacking_mode": "multiple",
			"base_height":   10,
			"base_width":    20,
			"base_length":   30,
			"base_weight":   2,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = do(http.MethodPost, "/api/shipping/simulate", map[string]any{
			"items": []map[string]any{
				{"product_id": 1, "quantity": 2},
				{"product_id": 2, "quantity": 2},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data model.Shipment `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Packages, 2)
		for _, pkg := range resp.Data.Packages {
			assert.Equal(t, model.SourceGroup, pkg.Source)
			assert.Equal(t, 1, pkg.InstanceCount)
			assert.InDelta(t, 2, pkg.Weight, 1e-9)
		}
		assert.Equal(t, 4, resp.Data.Summary.GroupedUnits)
		assert.Equal(t, 0, resp.Data.Summary.LooseUnits)
	})
}
