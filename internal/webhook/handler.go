package webhook

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/pkg/errors"
)

var (
	webhookSuccessCounter      = metrics.GetOrCreateCounter(`webhook_requests_total{result="success"}`)
	webhookUnauthorizedCounter = metrics.GetOrCreateCounter(`webhook_requests_total{result="invalid_signature"}`)
	webhookMissingIDCounter    = metrics.GetOrCreateCounter(`webhook_requests_total{result="missing_invoice_id"}`)
	webhookStorageErrorCounter = metrics.GetOrCreateCounter(`webhook_requests_total{result="storage_error"}`)
	webhookReadErrorCounter    = metrics.GetOrCreateCounter(`webhook_requests_total{result="body_read_error"}`)

	webhookDurationHistogram = metrics.GetOrCreateHistogram(`webhook_request_duration_milliseconds`)
)

type Handler struct {
	processor *Processor
	logger    *slog.Logger
}

func NewHandler(processor *Processor, logger *slog.Logger) *Handler {
	return &Handler{processor: processor, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		webhookDurationHistogram.Update(float64(time.Since(start).Milliseconds()))
	}()

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.ErrorContext(r.Context(), fmt.Sprintf("Error reading request body: %v", err))
		webhookReadErrorCounter.Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "cannot read body"})
		return
	}

	err = h.processor.Process(r.Context(), rawBody, r.Header.Get(SignatureHeader))
	switch {
	case errors.Is(err, ErrInvalidSignature):
		webhookUnauthorizedCounter.Inc()
		http.Error(w, "invalid signature", http.StatusUnauthorized)
	case errors.Is(err, ErrMissingInvoiceID):
		webhookMissingIDCounter.Inc()
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing invoice_id"})
	case err != nil:
		webhookStorageErrorCounter.Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "storage failure"})
	default:
		webhookSuccessCounter.Inc()
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func writeJSON(w http.ResponseWriter, code int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error(fmt.Sprintf("Error writing response: %v", err))
	}
}
