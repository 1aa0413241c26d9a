// Package config loads application configuration from environment variables.
// All variables use the LEARN_ prefix. A .env file in the working directory is
// read first if present; real environment variables take precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig
	Static         StaticConfig
	CORS           CORSConfig
	Database       DatabaseConfig
	Cache          CacheConfig
	Analysis       AnalysisConfig
	Log            LogConfig
	CurriculumPath string
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Port int
	Host string
}

// StaticConfig holds the optional static asset listener for the quiz UI.
type StaticConfig struct {
	Dir  string
	Port int
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables
// the analysis event log.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Dragonfly/Redis connection settings. An empty URL
// disables result caching.
type CacheConfig struct {
	URL string
	TTL time.Duration
}

// AnalysisConfig holds engine thresholds. Zero values fall back to the
// engine defaults.
type AnalysisConfig struct {
	StrongCutoff        int
	ModerateCutoff      int
	NotAttemptedPenalty int
	DailyBudgetMinutes  int
	FocusTopicLimit     int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with LEARN_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	ttl, err := envDuration("LEARN_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("LEARN_SERVER_PORT", 5000),
			Host: envStr("LEARN_SERVER_HOST", "0.0.0.0"),
		},
		Static: StaticConfig{
			Dir:  envStr("LEARN_STATIC_DIR", ""),
			Port: envInt("LEARN_STATIC_PORT", 8000),
		},
		CORS: CORSConfig{
			AllowedOrigins: envList("LEARN_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:      envStr("LEARN_DATABASE_URL", ""),
			MaxConns: envInt("LEARN_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("LEARN_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL: envStr("LEARN_CACHE_URL", ""),
			TTL: ttl,
		},
		Analysis: AnalysisConfig{
			StrongCutoff:        envInt("LEARN_ANALYSIS_STRONG_CUTOFF", 0),
			ModerateCutoff:      envInt("LEARN_ANALYSIS_MODERATE_CUTOFF", 0),
			NotAttemptedPenalty: envInt("LEARN_ANALYSIS_NOT_ATTEMPTED_PENALTY", 0),
			DailyBudgetMinutes:  envInt("LEARN_ANALYSIS_DAILY_BUDGET", 0),
			FocusTopicLimit:     envInt("LEARN_ANALYSIS_FOCUS_TOPICS", 0),
		},
		Log: LogConfig{
			Level:  envStr("LEARN_LOG_LEVEL", "info"),
			Format: envStr("LEARN_LOG_FORMAT", "json"),
		},
		CurriculumPath: envStr("LEARN_CURRICULUM_PATH", ""),
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("LEARN_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Static.Dir != "" {
		if c.Static.Port <= 0 || c.Static.Port > 65535 {
			return fmt.Errorf("LEARN_STATIC_PORT must be between 1 and 65535, got %d", c.Static.Port)
		}
		if c.Static.Port == c.Server.Port {
			return fmt.Errorf("LEARN_STATIC_PORT must differ from LEARN_SERVER_PORT (%d)", c.Server.Port)
		}
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("LEARN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	if c.Database.URL != "" && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("LEARN_DATABASE_MIN_CONNS (%d) exceeds LEARN_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

// HasDatabase returns true if the event log database is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasCache returns true if result caching is configured.
func (c *Config) HasCache() bool {
	return c.Cache.URL != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration: %w", key, v, err)
	}
	return d, nil
}
