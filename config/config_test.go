package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 16, cfg.Cache.Shards)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "stacking_service", cfg.Database.DatabaseName)
		assert.Equal(t, uint64(20), cfg.Database.MaxPoolSize)
		assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
		assert.Equal(t, "min_volume", cfg.Stacking.Strategy)
		assert.Equal(t, 200000, cfg.Stacking.BranchLimit)
		assert.Equal(t, 10.0, cfg.Stacking.DimensionCM)
		assert.Equal(t, 1.0, cfg.Stacking.WeightKG)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Log.Pretty)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("CACHE_SIZE", "500")
		_ = os.Setenv("CACHE_TTL", "10m")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1,key2")
		_ = os.Setenv("STACKING_STRATEGY", "MAX_GROUPED")
		_ = os.Setenv("STACKING_BRANCH_LIMIT", "5000")
		_ = os.Setenv("DEFAULT_DIMENSION_CM", "12.5")
		_ = os.Setenv("DEFAULT_WEIGHT_KG", "0.3")
		_ = os.Setenv("STACKING_SEED_FILE", "/etc/stacking/groups.json")
		_ = os.Setenv("LOG_LEVEL", "debug")
		_ = os.Setenv("LOG_PRETTY", "true")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.Equal(t, "max_grouped", cfg.Stacking.Strategy)
		assert.Equal(t, 5000, cfg.Stacking.BranchLimit)
		assert.Equal(t, 12.5, cfg.Stacking.DimensionCM)
		assert.Equal(t, 0.3, cfg.Stacking.WeightKG)
		assert.Equal(t, "/etc/stacking/groups.json", cfg.Stacking.SeedFile)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.Pretty)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		_ = os.Setenv("DEFAULT_DIMENSION_CM", "-3")
		_ = os.Setenv("DEFAULT_WEIGHT_KG", "heavy")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 10.0, cfg.Stacking.DimensionCM)
		assert.Equal(t, 1.0, cfg.Stacking.WeightKG)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})

	t.Run("appends CORS origins to local defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://shop.example.com, ")
		defer os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:3000")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://shop.example.com")
		assert.Len(t, cfg.Server.CORSOrigins, 3)
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("loads values without overriding the environment", func(t *testing.T) {
		os.Clearenv()
		defer os.Clearenv()
		_ = os.Setenv("PORT", "7070")

		path := filepath.Join(t.TempDir(), ".env")
		content := "PORT=9999\nSTACKING_STRATEGY=max_grouped\n# comment\nCACHE_SHARDS=8\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		require.NoError(t, LoadEnvFile(path))
		cfg := Load()

		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, "max_grouped", cfg.Stacking.Strategy)
		assert.Equal(t, 8, cfg.Cache.Shards)
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("KEY='unterminated\n"), 0o600))

		assert.Error(t, LoadEnvFile(path))
	})
}
