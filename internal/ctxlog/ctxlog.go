// Package ctxlog carries the run's slog.Logger through context.Context so
// that deeply nested resolution code logs with the attributes of the
// profile and resource it is working on.
package ctxlog

import (
	"context"
	"log/slog"
)

type key struct{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext extracts the slog.Logger from a context. A missing logger is
// a wiring bug, so it panics.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}

// With derives a logger carrying args and stores it in the returned context.
func With(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := FromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}
