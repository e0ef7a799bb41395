package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	loggerKey contextKey = iota
	explicitLoggerKey
	requestIDKey
)

// WithLogger adds a logger to the context. A logger set here takes
// precedence over a client's own logger; see HasLogger.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(storeLogger(ctx, logger), explicitLoggerKey, true)
}

// HasLogger reports whether a logger was set on ctx, or an ancestor, with
// WithLogger. Field helpers such as WithOperation do not count.
func HasLogger(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	explicit, _ := ctx.Value(explicitLoggerKey).(bool)
	return explicit
}

func storeLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithRequestID stores a request ID and tags the context logger with it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return WithField(ctx, "request_id", requestID)
}

// RequestID extracts the request ID from context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := addField(FromContext(ctx).With(), key, value).Logger()
	return storeLogger(ctx, &logger)
}

// WithOperation tags the context logger with a FRED operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}

// WithEndpoint tags the context logger with an endpoint path.
func WithEndpoint(ctx context.Context, path string) context.Context {
	return WithField(ctx, "endpoint", path)
}
