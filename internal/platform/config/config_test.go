package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfa-dev/personal_finance_app/internal/platform/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BACKEND", config.BackendMemory)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.False(t, cfg.EnableDBCheck)
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("BACKEND", config.BackendPostgres)
	t.Setenv("PGSQL_URL", "postgres://localhost:5432/pfa")
	t.Setenv("WEEK_START", "sunday")
	t.Setenv("ENABLE_DB_CHECK", "true")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/pfa", cfg.DatabaseURL)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.True(t, cfg.EnableDBCheck)
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("BACKEND", "sqlite")

	_, err := config.LoadConfig()
	require.Error(t, err)
}
