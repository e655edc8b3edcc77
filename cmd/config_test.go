package cmd_test

import (
	"log/slog"
	"testing"
	"time"

	"ordering/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"payments", "shipping"}, cfg.InboundChannels)
	assert.Equal(t, 48*time.Hour, cfg.StaleOrderAge)
	assert.Equal(t, 7*24*time.Hour, cfg.ProcessedEventTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("INBOUND_CHANNELS", "billing,carrier,returns")
	t.Setenv("STALE_ORDER_AGE", "72h")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, []string{"billing", "carrier", "returns"}, cfg.InboundChannels)
	assert.Equal(t, 72*time.Hour, cfg.StaleOrderAge)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=ordering sslmode=disable", cfg.DSN())
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("STALE_ORDER_AGE", "two days")

	_, err := cmd.LoadConfig()

	require.Error(t, err)
}
