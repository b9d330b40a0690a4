package server

import (
	"log/slog"
	"net/http"

	"payment-webhook-service/internal/logcontext"
	"github.com/google/uuid"
)

// RequestID tags every request context with a generated id so log lines from
// one request can be correlated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logcontext.AppendCtx(r.Context(), slog.String("request_id", uuid.NewString()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
