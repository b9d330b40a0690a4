package logcontext

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var slogFields ctxKey

// AppendCtx returns a context carrying the given attrs in addition to any
// attrs already present. Handlers read them back via Attrs.
func AppendCtx(parent context.Context, attrs ...slog.Attr) context.Context {
	if existing, ok := parent.Value(slogFields).([]slog.Attr); ok {
		attrs = append(existing[:len(existing):len(existing)], attrs...)
	}
	return context.WithValue(parent, slogFields, attrs)
}

func Attrs(ctx context.Context) []slog.Attr {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		return attrs
	}
	return nil
}
