// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	Database        DatabaseConfig
	Redis           RedisConfig
	Log             LogConfig

	// ScoringConfigPath points at an optional YAML file overriding the
	// default scoring weights and radar dimensions.
	ScoringConfigPath string
	// DemoSeed loads a sample dataset into the in-memory store when no
	// database is configured.
	DemoSeed bool
}

// DatabaseConfig selects the audit data store. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the catalog read-through cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// SlogLevel maps the Level string to an slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CatalogCacheTTL is the default lifetime of cached process and referential names.
var CatalogCacheTTL = 10 * time.Minute

// LoadDotEnv loads .env.local then .env when present. Variables already set in
// the environment win.
func LoadDotEnv() error {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            envOr("QARA_ADDR", ":8080"),
		ShutdownTimeout: 10 * time.Second,
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
			CacheTTL:     CatalogCacheTTL,
		},
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
		ScoringConfigPath: os.Getenv("SCORING_CONFIG"),
		DemoSeed:          strings.EqualFold(os.Getenv("DEMO_SEED"), "true"),
	}

	if v := os.Getenv("CATALOG_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("parse CATALOG_CACHE_TTL: %w", err)
		}
		cfg.Redis.CacheTTL = d
	}
	if v := os.Getenv("DATABASE_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("parse DATABASE_MAX_OPEN_CONNS: %w", err)
		}
		cfg.Database.MaxOpenConns = n
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "json", "text":
	default:
		return Server{}, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.Log.Format)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
