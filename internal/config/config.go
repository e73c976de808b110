// Package config loads process-wide configuration from the environment,
// read once at startup.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Browser callers allowed to hit the API. Empty means same-origin only.
	AllowedOrigins []string

	// Rate limit applied to the register/login endpoints, per client IP.
	AuthRatePerMinute int

	// Logging
	LogLevel slog.Level
}

type getenv func(string) string

// Load reads configuration from the environment. Use LoadFromEnv with
// os.Getenv in main; tests inject their own lookup.
func Load(get getenv) *Config {
	return &Config{
		Port:              getEnv(get, "PORT", "8081"),
		SQLiteDBPath:      getEnv(get, "SQLITE_DB_PATH", "./data/tally.db"),
		JWTSecret:         get("JWT_SECRET"),
		TokenTTL:          getEnvDuration(get, "TOKEN_TTL", time.Hour),
		AllowedOrigins:    splitOrigins(get("ALLOWED_ORIGINS")),
		AuthRatePerMinute: getEnvInt(get, "AUTH_RATE_PER_MINUTE", 10),
		LogLevel:          parseLevel(get("LOG_LEVEL")),
	}
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	}

	// The token signing key is secret material; refusing to start without it
	// beats every request failing later.
	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if c.TokenTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	} else if c.TokenTTL > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid token TTL %v: must be at most 24 hours", c.TokenTTL))
	}

	if c.AuthRatePerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid auth rate %d: must be at least 1 per minute", c.AuthRatePerMinute))
	}

	for _, origin := range c.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Sprintf("invalid allowed origin '%s': must start with http:// or https://", origin))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(get getenv, key, defaultValue string) string {
	if value := get(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(get getenv, key string, defaultValue int) int {
	if value := get(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(get getenv, key string, defaultValue time.Duration) time.Duration {
	if value := get(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
