package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	Timezone string

	// Database
	DatabaseURL string
	SQLitePath  string

	// Redis
	RedisURL string

	// RabbitMQ
	RabbitMQURL string

	// Outbox
	OutboxPollInterval     time.Duration
	OutboxBatchSize        int
	OutboxMaxRetries       int
	OutboxRetentionDays    int
	OutboxProcessorEnabled bool
	OutboxStatsInterval    time.Duration

	// Worker
	WorkerHealthAddr string

	// HTTP API
	HTTPAddr           string
	CORSAllowedOrigins []string

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// Recommendations
	RecommendationCacheTTL time.Duration

	// Calendar import
	CalendarFetchTimeout    time.Duration
	CalendarBreakerFailures int
	CalendarBreakerTimeout  time.Duration

	// Warnings lists environment values that could not be parsed.
	Warnings []string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Malformed numbers, durations and booleans keep
// their default and are reported in Warnings; only an unknown timezone is
// fatal.
func Load() (*Config, error) {
	_ = godotenv.Load()

	e := &envReader{lookup: os.Getenv}
	cfg := &Config{
		AppEnv:   e.str("APP_ENV", "development"),
		LogLevel: e.str("LOG_LEVEL", "info"),
		Timezone: e.str("TEMPO_TIMEZONE", "Local"),

		DatabaseURL: e.str("DATABASE_URL", ""),
		SQLitePath:  e.str("TEMPO_SQLITE_PATH", ""),
		RedisURL:    e.str("REDIS_URL", ""),
		RabbitMQURL: e.str("RABBITMQ_URL", ""),

		OutboxPollInterval:     e.duration("OUTBOX_POLL_INTERVAL", 500*time.Millisecond),
		OutboxBatchSize:        e.int("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:       e.int("OUTBOX_MAX_RETRIES", 5),
		OutboxRetentionDays:    e.int("OUTBOX_RETENTION_DAYS", 14),
		OutboxProcessorEnabled: e.bool("OUTBOX_PROCESSOR_ENABLED", true),
		OutboxStatsInterval:    e.duration("OUTBOX_STATS_INTERVAL", time.Minute),

		WorkerHealthAddr: e.str("WORKER_HEALTH_ADDR", "127.0.0.1:8081"),

		HTTPAddr:           e.str("HTTP_ADDR", "127.0.0.1:8080"),
		CORSAllowedOrigins: e.list("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		MCPAddr:      e.str("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: e.str("MCP_AUTH_TOKEN", ""),

		RecommendationCacheTTL: e.duration("RECOMMENDATION_CACHE_TTL", time.Hour),

		CalendarFetchTimeout:    e.duration("CALENDAR_FETCH_TIMEOUT", 10*time.Second),
		CalendarBreakerFailures: e.int("CALENDAR_BREAKER_FAILURES", 3),
		CalendarBreakerTimeout:  e.duration("CALENDAR_BREAKER_TIMEOUT", time.Minute),
	}
	cfg.Warnings = e.warnings

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves Timezone. Schedules are computed on the wall clock of
// this zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TEMPO_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// envReader reads typed values and remembers the ones it had to ignore.
type envReader struct {
	lookup   func(string) string
	warnings []string
}

func (e *envReader) str(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) int(key string, def int) int {
	return parseOr(e, key, def, strconv.Atoi)
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	return parseOr(e, key, def, time.ParseDuration)
}

func (e *envReader) bool(key string, def bool) bool {
	return parseOr(e, key, def, strconv.ParseBool)
}

// list splits a comma-separated value, dropping blanks.
func (e *envReader) list(key string, def []string) []string {
	raw := e.lookup(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseOr[T any](e *envReader, key string, def T, parse func(string) (T, error)) T {
	raw := e.lookup(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		e.warnings = append(e.warnings, fmt.Sprintf("%s=%q is invalid, using %v", key, raw, def))
		return def
	}
	return v
}
