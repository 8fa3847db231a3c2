// SPDX-License-Identifier: Apache-2.0

package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const (
	sourceUUIDKey ctxKey = "source_uuid"
	streamUUIDKey ctxKey = "stream_uuid"
)

// ContextWithSourceUUID stores the owning media source's uuid in ctx.
func ContextWithSourceUUID(ctx context.Context, uuid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sourceUUIDKey, uuid)
}

// ContextWithStreamUUID stores the owning media stream's uuid in ctx.
func ContextWithStreamUUID(ctx context.Context, uuid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, streamUUIDKey, uuid)
}

// SourceUUIDFromContext extracts the source uuid from ctx if present.
func SourceUUIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sourceUUIDKey).(string); ok {
		return v
	}
	return ""
}

// StreamUUIDFromContext extracts the stream uuid from ctx if present.
func StreamUUIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(streamUUIDKey).(string); ok {
		return v
	}
	return ""
}

// WithContext enriches logger with correlation fields carried on ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	builder := logger.With()
	added := false
	if sid := SourceUUIDFromContext(ctx); sid != "" {
		builder = builder.Str("source_uuid", sid)
		added = true
	}
	if tid := StreamUUIDFromContext(ctx); tid != "" {
		builder = builder.Str("stream_uuid", tid)
		added = true
	}
	if !added {
		return logger
	}
	return builder.Logger()
}

// WithComponentFromContext returns Base() annotated with component and
// any correlation fields present on ctx.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	return WithContext(ctx, Base()).With().Str("component", component).Logger()
}
