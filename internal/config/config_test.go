package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("GEOCODE_WORKERS", "")
	t.Setenv("REDIS_TTL", "")

	cfg, err := load(nil)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Data.Directory)
	assert.False(t, cfg.Data.GeoEnabled)
	assert.Equal(t, 8, cfg.Geocode.Workers)
	assert.Equal(t, 10, cfg.Geocode.RPS)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.NotEmpty(t, cfg.Scraper.Keywords)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /srv/file-data
geocode_enabled: true
geocode_workers: 3
scraper_keywords:
  - data-scientist
  - ml-engineer
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DATA_DIR", "/srv/env-data")
	t.Setenv("GEOCODE_ENABLED", "")
	t.Setenv("GEOCODE_WORKERS", "")
	t.Setenv("SCRAPER_KEYWORDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/env-data", cfg.Data.Directory)
	assert.True(t, cfg.Data.GeoEnabled)
	assert.Equal(t, 3, cfg.Geocode.Workers)
	assert.Equal(t, []string{"data-scientist", "ml-engineer"}, cfg.Scraper.Keywords)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("GEOCODE_RPS", "fast")
	t.Setenv("GEOCODE_ENABLED", "maybe")

	_, err := load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_RPS")
	assert.Contains(t, err.Error(), "GEOCODE_ENABLED")
}

func TestRequireServer(t *testing.T) {
	err := Config{}.RequireServer()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "JWT_SECRET, ADMIN_PASSWORD_HASH")

	cfg := Config{Auth: AuthConfig{JWTSecret: "s", AdminPasswordHash: "h"}}
	assert.NoError(t, cfg.RequireServer())
}

func TestRequireGeocoding(t *testing.T) {
	assert.Error(t, Config{}.RequireGeocoding())
	assert.NoError(t, Config{Geocode: GeocodeConfig{AccessKey: "k"}}.RequireGeocoding())
}

func TestDatabaseEnabled(t *testing.T) {
	assert.False(t, DatabaseConfig{}.Enabled())
	assert.True(t, DatabaseConfig{DBHost: "localhost", DBName: "jobs"}.Enabled())
}
