package logging

import (
	"context"
	"log/slog"

	"payment-webhook-service/internal/logcontext"
)

// ContextHandler adds attrs stored in the context to every record.
type ContextHandler struct {
	slog.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(logcontext.Attrs(ctx)...)
	return h.Handler.Handle(ctx, r)
}
