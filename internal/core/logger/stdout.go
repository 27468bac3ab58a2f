package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/samber/lo"
)

type StdoutLogger struct {
	logger *slog.Logger
}

func initStdoutLogger(serviceName string) (Logger, error) {
	return newStdoutLogger(os.Stdout, serviceName), nil
}

func newStdoutLogger(w io.Writer, serviceName string) *StdoutLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return &StdoutLogger{
		logger: slog.New(handler.WithAttrs([]slog.Attr{
			slog.String("service", serviceName),
		})),
	}
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	// sorted so lines are stable across runs
	keys := lo.Keys(entry.Attributes)
	slices.Sort(keys)

	attrs := make([]any, 0, len(keys)*2+2)
	for _, key := range keys {
		attrs = append(attrs, key, entry.Attributes[key])
	}
	if entry.Error != nil {
		attrs = append(attrs, "error", entry.Error.Error())
	}

	switch entry.Level {
	case LogLevelDebug:
		l.logger.DebugContext(ctx, entry.Message, attrs...)
	case LogLevelInfo:
		l.logger.InfoContext(ctx, entry.Message, attrs...)
	case LogLevelWarn:
		l.logger.WarnContext(ctx, entry.Message, attrs...)
	case LogLevelError, LogLevelFatal:
		l.logger.ErrorContext(ctx, entry.Message, attrs...)
	}
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}
