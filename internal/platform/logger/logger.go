package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type ctxKey string

const (
	sessionKey ctxKey = "session_id"
	userKey    ctxKey = "user_id"
)

var (
	defaultLogger *slog.Logger
	output        io.Writer
)

// Init configures the global logger with the given level and format,
// writing to w.
func Init(level, format string, w io.Writer) {
	var logLevel slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	output = w
	slog.SetDefault(defaultLogger)
}

// Close closes the writer passed to Init when it is a closer other than
// the standard streams.
func Close() error {
	c, ok := output.(io.Closer)
	if !ok || output == os.Stderr || output == os.Stdout {
		return nil
	}
	output = nil
	return c.Close()
}

// Get returns the default logger, initializing a stderr text logger on
// first use.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Init("INFO", "text", os.Stderr)
	}
	return defaultLogger
}

// WithSession stores a new session correlation ID in ctx.
func WithSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey, uuid.NewString())
}

// WithUser stores the logged-in user ID in ctx.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// WithContext returns a logger carrying the session and user found in ctx.
func WithContext(ctx context.Context) *slog.Logger {
	l := Get()
	if id, ok := ctx.Value(sessionKey).(string); ok {
		l = l.With("session_id", id)
	}
	if id, ok := ctx.Value(userKey).(string); ok && id != "" {
		l = l.With("user_id", id)
	}
	return l
}

func WithFields(fields ...any) *slog.Logger {
	return Get().With(fields...)
}

// Fatal logs at error level, closes the log writer and exits.
func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	Close()
	os.Exit(1)
}
