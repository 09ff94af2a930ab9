package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.SlotHoldTTL)
	assert.Equal(t, 30, cfg.OpenDatesHorizonDays)
	assert.Equal(t, 100, cfg.AuditQueueSize)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SLOT_HOLD_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.SlotHoldTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non-numeric pool size", key: "DB_MAX_OPEN_CONNS", val: "dez"},
		{name: "zero pool size", key: "DB_MAX_OPEN_CONNS", val: "0"},
		{name: "idle above open", key: "DB_MAX_IDLE_CONNS", val: "50"},
		{name: "bad duration", key: "SLOT_HOLD_TTL", val: "15"},
		{name: "negative hold", key: "SLOT_HOLD_TTL", val: "-1s"},
		{name: "horizon too large", key: "OPEN_DATES_HORIZON_DAYS", val: "365"},
		{name: "empty audit queue", key: "AUDIT_QUEUE_SIZE", val: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
