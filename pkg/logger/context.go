package logger

import (
	"context"
	"log/slog"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// With stores a logger carrying the given fields in ctx.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, loggerKey, From(ctx).With(fields...))
}

// From returns the request-scoped logger, falling back to the process logger.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
			return l
		}
	}
	return LoggerWrapper()
}
