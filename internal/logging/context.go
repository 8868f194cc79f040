package logging

import (
	"context"
	"log/slog"

	"github.com/supermemoryai/install-mcp/internal/redact"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() if none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// RedactAttr masks attribute values that look secret.
// Its signature matches slog.HandlerOptions.ReplaceAttr so JSON handlers
// can share the text handler's masking.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	switch v := a.Value.Any().(type) {
	case string:
		if redact.ShouldMask(a.Key) || redact.ContainsTokenPrefix(v) {
			return slog.String(a.Key, redact.MaskValue(v))
		}
	case map[string]string:
		return slog.Any(a.Key, redact.Map(v))
	default:
		if redact.ShouldMask(a.Key) && a.Value.Kind() != slog.KindGroup {
			return slog.String(a.Key, redact.MaskValue(a.Value.String()))
		}
	}
	return a
}
