package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.True(t, cfg.LogRedact)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.False(t, cfg.HasSeed)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"SKILLPULSE_DB":         "/data/sp.db",
		"SKILLPULSE_ADDR":       "127.0.0.1:9000",
		"SKILLPULSE_LOG_MODE":   "prod",
		"SKILLPULSE_LOG_REDACT": "off",
		"SKILLPULSE_REDIS_ADDR": " localhost:6379 ",
		"SKILLPULSE_LOCK_TTL":   "750ms",
		"SKILLPULSE_SEED":       "42",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/data/sp.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.False(t, cfg.LogRedact)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 750*time.Millisecond, cfg.LockTTL)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad ttl":      {"SKILLPULSE_LOCK_TTL": "soon"},
		"negative ttl": {"SKILLPULSE_LOCK_TTL": "-1s"},
		"bad seed":     {"SKILLPULSE_SEED": "abc"},
		"bad redact":   {"SKILLPULSE_LOG_REDACT": "maybe"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(vars))
			assert.Error(t, err)
		})
	}
}
