//go:build !integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stacking-service/config"
	"github.com/guttosm/stacking-service/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(seedFile string) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			Size:   100,
			TTL:    time.Minute,
			Shards: 4,
		},
		Auth: config.AuthConfig{
			Enabled: true,
			APIKeys: map[string]bool{"test-key": true},
		},
		Stacking: config.StackingConfig{
			Strategy:    "min_volume",
			BranchLimit: 10000,
			DimensionCM: 10,
			WeightKG:    1,
			SeedFile:    seedFile,
		},
		Log: config.LogConfig{Level: "error"},
	}
}

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "in-memory catalog with auth", cfg: testConfig("")},
		{name: "zero config", cfg: config.Config{}},
		{
			name: "cache disabled",
			cfg: config.Config{
				Cache: config.CacheConfig{Size: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			application := InitializeApp(tt.cfg)
			require.NotNil(t, application)
			assert.NotNil(t, application.Router)
			assert.NoError(t, application.Close(context.Background()))
		})
	}
}

func TestInitializeApp_SimulatesAgainstSeededCatalog(t *testing.T) {
	application := InitializeApp(testConfig(writeSeed(t, seedJSON)))
	t.Cleanup(func() { _ = application.Close(context.Background()) })

	body := `{"items":[{"product_id":10,"quantity":5,"width":45,"height":20,"length":50,"weight":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/shipping/simulate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()

	application.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data model.Shipment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// two pairs stack into one package, the fifth chair ships loose
	require.Len(t, resp.Data.Packages, 2)
	assert.Equal(t, model.SourceGroup, resp.Data.Packages[0].Source)
	assert.Equal(t, 2, resp.Data.Packages[0].InstanceCount)
	assert.InDelta(t, 48, resp.Data.Packages[0].Height, 1e-9)
	assert.Equal(t, model.SourceLoose, resp.Data.Packages[1].Source)
	assert.Equal(t, 4, resp.Data.Summary.GroupedUnits)
	assert.Equal(t, 1, resp.Data.Summary.LooseUnits)
}

func TestInitializeApp_RequiresAPIKey(t *testing.T) {
	application := InitializeApp(testConfig(""))
	t.Cleanup(func() { _ = application.Close(context.Background()) })

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w = httptest.NewRecorder()
	application.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInitializeApp_ReadyWithoutDatabase(t *testing.T) {
	application := InitializeApp(testConfig(""))
	t.Cleanup(func() { _ = application.Close(context.Background()) })

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"ok"`)
}
