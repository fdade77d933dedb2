package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings.
type Config struct {
	DBPath string // empty means store.DefaultDBPath

	ServerAddress string
	GinMode       string

	LogMode     string
	LogRedact   bool
	LogHashSalt string

	RedisAddr string        // empty means in-process locking
	LockTTL   time.Duration // Redis lease, renewed while held

	// Seed fixes the recommender's random source when HasSeed is set.
	Seed    int64
	HasSeed bool
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBPath:        getenv("SKILLPULSE_DB"),
		ServerAddress: getenvDefault(getenv, "SKILLPULSE_ADDR", ":8080"),
		GinMode:       getenvDefault(getenv, "SKILLPULSE_GIN_MODE", "release"),
		LogMode:       getenvDefault(getenv, "SKILLPULSE_LOG_MODE", "dev"),
		LogHashSalt:   getenv("SKILLPULSE_LOG_HASH_SALT"),
		RedisAddr:     strings.TrimSpace(getenv("SKILLPULSE_REDIS_ADDR")),
	}

	redact, err := parseBool(getenvDefault(getenv, "SKILLPULSE_LOG_REDACT", "true"))
	if err != nil {
		return nil, fmt.Errorf("config: SKILLPULSE_LOG_REDACT: %w", err)
	}
	cfg.LogRedact = redact

	ttl, err := time.ParseDuration(getenvDefault(getenv, "SKILLPULSE_LOCK_TTL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("config: SKILLPULSE_LOCK_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("config: SKILLPULSE_LOCK_TTL must be positive, got %s", ttl)
	}
	cfg.LockTTL = ttl

	if v := getenv("SKILLPULSE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: SKILLPULSE_SEED=%q is not an integer", v)
		}
		cfg.Seed = seed
		cfg.HasSeed = true
	}

	return cfg, nil
}

func getenvDefault(getenv func(string) string, k, fallback string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}
