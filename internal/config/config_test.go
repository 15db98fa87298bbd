package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/loadout-efficiency/internal/config"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.ReportDB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"LOADOUT_REDIS_ADDR":       "redis:6380",
		"LOADOUT_HTTP_ADDR":        "127.0.0.1:9000",
		"LOADOUT_REPORT_DB":        "/var/lib/loadout/reports.db",
		"LOADOUT_LOG_LEVEL":        "DEBUG",
		"LOADOUT_SHUTDOWN_TIMEOUT": "5s",
	})
	require.NoError(t, err)

	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, "/var/lib/loadout/reports.db", cfg.ReportDB)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)

	level, err := config.ParseLogLevel(cfg.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadFromInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{name: "log level", env: map[string]string{"LOADOUT_LOG_LEVEL": "loud"}, errMsg: "LogLevel"},
		{name: "timeout", env: map[string]string{"LOADOUT_SHUTDOWN_TIMEOUT": "soon"}, errMsg: "failed to parse environment"},
		{name: "negative timeout", env: map[string]string{"LOADOUT_SHUTDOWN_TIMEOUT": "-1s"}, errMsg: "ShutdownTimeout"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadFrom(tc.env)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
