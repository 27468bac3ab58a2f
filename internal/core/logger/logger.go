package logger

import (
	"context"
	"maps"
	"os"
	"strings"
	"time"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
)

var levelRank = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
	LogLevelFatal: 4,
}

// ParseLevel falls back to INFO for unknown names.
func ParseLevel(name string) LogLevel {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := levelRank[level]; ok {
		return level
	}
	return LogLevelInfo
}

func (l LogLevel) Enabled(min LogLevel) bool {
	return levelRank[l] >= levelRank[min]
}

type attributes = map[string]any

type LogEntry struct {
	Level      LogLevel
	Message    string
	Attributes attributes
	Error      error
	Timestamp  time.Time
}

type Logger interface {
	Log(ctx context.Context, entry LogEntry)
	Shutdown(ctx context.Context) error
}

type Options struct {
	CollectorEndpoint string
	ServiceName       string
	Production        bool
	Level             LogLevel
}

var (
	globalLogger Logger = noopLogger{}
	minLevel            = LogLevelDebug
	exit                = os.Exit
)

type contextKey struct{}

// WithAttributes returns a context whose attributes are attached to every
// entry logged with it. Later values win on key collisions.
func WithAttributes(ctx context.Context, attrs attributes) context.Context {
	merged := make(attributes, len(attrs))
	if existing, ok := ctx.Value(contextKey{}).(attributes); ok {
		maps.Copy(merged, existing)
	}
	maps.Copy(merged, attrs)
	return context.WithValue(ctx, contextKey{}, merged)
}

func contextAttributes(ctx context.Context) attributes {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(contextKey{}).(attributes)
	return attrs
}

func newLogEntry(ctx context.Context, level LogLevel, message string, err error, attrs attributes) LogEntry {
	scoped := contextAttributes(ctx)
	if len(scoped) > 0 {
		merged := make(attributes, len(scoped)+len(attrs))
		maps.Copy(merged, scoped)
		maps.Copy(merged, attrs)
		attrs = merged
	}
	return LogEntry{
		Level:      level,
		Message:    message,
		Attributes: attrs,
		Error:      err,
		Timestamp:  time.Now(),
	}
}

func Debug(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(ctx, LogLevelDebug, message, nil, attrs))
}

func Info(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(ctx, LogLevelInfo, message, nil, attrs))
}

func Warn(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(ctx, LogLevelWarn, message, nil, attrs))
}

func Error(ctx context.Context, message string, err error, attrs attributes) {
	Log(ctx, newLogEntry(ctx, LogLevelError, message, err, attrs))
}

// Fatal flushes the logger and terminates the process.
func Fatal(ctx context.Context, message string, err error, attrs attributes) {
	Log(ctx, newLogEntry(ctx, LogLevelFatal, message, err, attrs))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = globalLogger.Shutdown(shutdownCtx)
	exit(1)
}

func Log(ctx context.Context, entry LogEntry) {
	if !entry.Level.Enabled(minLevel) {
		return
	}
	globalLogger.Log(ctx, entry)
}

func Shutdown(ctx context.Context) error {
	return globalLogger.Shutdown(ctx)
}

func Initialize(opts Options) error {
	var (
		l   Logger
		err error
	)

	if opts.Production {
		l, err = initializeOtelLogger(opts.CollectorEndpoint, opts.ServiceName)
	} else {
		l, err = initStdoutLogger(opts.ServiceName)
	}

	if err != nil {
		return err
	}

	globalLogger = l
	minLevel = ParseLevel(string(opts.Level))
	return nil
}
