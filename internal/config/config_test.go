package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/workout-analytics/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 12, cfg.Analytics.AdherenceLookbackWeeks)
	assert.Equal(t, 7, cfg.Analytics.PlannedHorizonDays)
	assert.Equal(t, 1, cfg.Analytics.WeekStart)
	assert.Equal(t, 5*time.Minute, cfg.Analytics.CacheTTL)
	assert.Equal(t, time.UTC, cfg.Analytics.Location())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":9090"
jwt:
  secret: "file-secret"
  expiration: "30m"
analytics:
  default_timezone: "Europe/Berlin"
  week_start: 0
  cache_ttl: "1m"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 0, cfg.Analytics.WeekStart)
	assert.Equal(t, time.Minute, cfg.Analytics.CacheTTL)
	assert.Equal(t, "Europe/Berlin", cfg.Analytics.Location().String())
}
