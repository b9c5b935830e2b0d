// Package observability provides structured logging, request tracing and
// health reporting for Tempo.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat selects the handler used to render records.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogLevel is the minimum severity that gets written. Anything slog.Level
// can parse is accepted, including offsets such as "info+2".
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// slogLevel falls back to info for unparseable values.
func (l LogLevel) slogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  LogLevel
	Format LogFormat
	// Output defaults to os.Stderr so CLI output on stdout stays clean.
	Output         io.Writer
	AddSource      bool
	ServiceName    string
	ServiceVersion string
}

// DefaultLogConfig is human-readable text at info level.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:          LogLevelInfo,
		Format:         LogFormatText,
		ServiceName:    "tempo",
		ServiceVersion: "dev",
	}
}

// ProductionLogConfig is JSON with source locations.
func ProductionLogConfig() LogConfig {
	cfg := DefaultLogConfig()
	cfg.Format = LogFormatJSON
	cfg.AddSource = true
	cfg.ServiceVersion = "unknown"
	return cfg
}

// NewLogger builds a logger that stamps the service name and version on
// every record, plus the correlation and request IDs carried by the
// record's context.
func NewLogger(cfg LogConfig) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel(), AddSource: cfg.AddSource}

	var base slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.Format == LogFormatJSON {
		base = slog.NewJSONHandler(out, opts)
	}

	var service []slog.Attr
	if cfg.ServiceName != "" {
		service = append(service, slog.String("service", cfg.ServiceName))
	}
	if cfg.ServiceVersion != "" {
		service = append(service, slog.String("version", cfg.ServiceVersion))
	}
	return slog.New(contextHandler{base.WithAttrs(service)})
}

// LoggerFromEnv builds a logger from TEMPO_ENV, TEMPO_LOG_LEVEL,
// TEMPO_LOG_FORMAT and TEMPO_VERSION. The worker uses it before the full
// configuration is loaded.
func LoggerFromEnv() *slog.Logger {
	return NewLogger(logConfigFromEnv(os.Getenv))
}

func logConfigFromEnv(getenv func(string) string) LogConfig {
	cfg := DefaultLogConfig()
	if strings.EqualFold(getenv("TEMPO_ENV"), "production") {
		cfg = ProductionLogConfig()
	}
	if v := getenv("TEMPO_LOG_LEVEL"); v != "" {
		cfg.Level = LogLevel(v)
	}
	if v := getenv("TEMPO_LOG_FORMAT"); v != "" {
		cfg.Format = LogFormat(strings.ToLower(v))
	}
	if v := getenv("TEMPO_VERSION"); v != "" {
		cfg.ServiceVersion = v
	}
	return cfg
}

// contextHandler copies request-scoped IDs from the context onto records.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := CorrelationIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(CorrelationIDKey, id))
	}
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(RequestIDKey, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// LogOperation scopes a logger to a named operation.
func LogOperation(logger *slog.Logger, operation string, attrs ...any) *slog.Logger {
	return logger.With(append([]any{OperationKey, operation}, attrs...)...)
}
