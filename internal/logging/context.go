package logging

import "context"

type contextKey int

const loggerKey contextKey = iota

// WithLoggerCtx returns a new context with the logger attached.
func WithLoggerCtx(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFromCtx returns the logger from context, or nil if not set.
func LoggerFromCtx(ctx context.Context) *Logger {
	l, _ := ctx.Value(loggerKey).(*Logger)
	return l
}

// FromCtx returns the logger attached to ctx, falling back to fallback and
// then to a discarding logger.
func FromCtx(ctx context.Context, fallback *Logger) *Logger {
	if l := LoggerFromCtx(ctx); l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return Discard()
}
