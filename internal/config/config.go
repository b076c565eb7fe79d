// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/HendryAvila/decisionsuite/internal/identity"
)

// Environment keys.
const (
	EnvDataDir      = "DECISIONSUITE_DATA_DIR"
	EnvHTTPAddr     = "DECISIONSUITE_HTTP_ADDR"
	EnvRateLimit    = "DECISIONSUITE_RATE_LIMIT"
	EnvRateWindow   = "DECISIONSUITE_RATE_WINDOW"
	EnvRateMaxKeys  = "DECISIONSUITE_RATE_MAX_KEYS"
	EnvPersist      = "DECISIONSUITE_PERSIST"
	EnvOutboxBuffer = "DECISIONSUITE_OUTBOX_BUFFER"
	EnvAPITokens    = "DECISIONSUITE_API_TOKENS"
	EnvLogLevel     = "DECISIONSUITE_LOG_LEVEL"
)

// Config holds every runtime setting.
type Config struct {
	DataDir      string
	HTTPAddr     string
	RateLimit    int
	RateWindow   time.Duration
	RateMaxKeys  int
	Persist      bool
	OutboxBuffer int
	APITokens    map[string]string
	LogLevel     string
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:      filepath.Join(home, ".decisionsuite"),
		HTTPAddr:     ":8080",
		RateLimit:    30,
		RateWindow:   time.Minute,
		RateMaxKeys:  10000,
		Persist:      true,
		OutboxBuffer: 256,
		APITokens:    map[string]string{},
		LogLevel:     "info",
	}
}

// Load reads .env (if any) and the environment on top of Default.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function. Unset or blank keys keep
// their defaults; malformed values are errors naming the key.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if v := get(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := get(EnvHTTPAddr); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.HTTPAddr = v
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	var err error
	if cfg.RateLimit, err = positiveInt(EnvRateLimit, get(EnvRateLimit), cfg.RateLimit); err != nil {
		return Config{}, err
	}
	if cfg.RateMaxKeys, err = positiveInt(EnvRateMaxKeys, get(EnvRateMaxKeys), cfg.RateMaxKeys); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBuffer, err = positiveInt(EnvOutboxBuffer, get(EnvOutboxBuffer), cfg.OutboxBuffer); err != nil {
		return Config{}, err
	}

	if v := get(EnvRateWindow); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: %s: invalid duration %q", EnvRateWindow, v)
		}
		cfg.RateWindow = d
	}

	if v := get(EnvPersist); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: invalid boolean %q", EnvPersist, v)
		}
		cfg.Persist = b
	}

	if v := get(EnvAPITokens); v != "" {
		tokens, err := identity.ParseTokens(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvAPITokens, err)
		}
		cfg.APITokens = tokens
	}

	return cfg, nil
}

func positiveInt(key, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("config: %s: want a positive integer, got %q", key, raw)
	}
	return n, nil
}
