package filterprune

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with filterprune-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithLayer adds a layer name field to the logger.
func (l *Logger) WithLayer(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("layer", name),
	}
}

// LogSelection logs a completed channel selection.
func (l *Logger) LogSelection(ctx context.Context, layer string, k, outputChannels int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "channel selection failed",
			"layer", layer,
			"k", k,
			"output_channels", outputChannels,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "channel selection completed",
			"layer", layer,
			"k", k,
			"output_channels", outputChannels,
		)
	}
}

// LogReconciliation logs a reconciliation branch firing. These are
// observability signals, not errors; clustering routinely over- or
// undershoots the target and the branch is how the exact count is restored.
func (l *Logger) LogReconciliation(ctx context.Context, layer string, branch Reconciliation, moved int) {
	switch branch {
	case ReconcileTruncate:
		l.InfoContext(ctx, "prune candidates exceed target, discarding surplus",
			"layer", layer,
			"discarded", moved,
		)
	case ReconcileBackfill:
		l.InfoContext(ctx, "prune candidates below target, sampling from keep set",
			"layer", layer,
			"sampled", moved,
		)
	}
}
