package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"payment-webhook-service/internal/status"
	"github.com/pkg/errors"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMissingInvoiceID = errors.New("missing invoice_id")
)

// invoiceIDKeys is the ordered fallback list for extracting the invoice
// identifier from the notification payload. First present non-empty wins.
var invoiceIDKeys = []string{"invoice_id", "invoice", "id"}

type InvoiceStore interface {
	Upsert(ctx context.Context, invoiceID, status, updatedAt string) error
}

type Processor struct {
	store  InvoiceStore
	secret string
	logger *slog.Logger
	now    func() time.Time
}

// NewProcessor builds a processor verifying signatures with the given shared
// secret. An empty secret disables verification entirely, which eases initial
// setup at the cost of accepting unauthenticated notifications.
func NewProcessor(store InvoiceStore, secret string, logger *slog.Logger) *Processor {
	return &Processor{
		store:  store,
		secret: secret,
		logger: logger,
		now:    time.Now,
	}
}

// Process authenticates a raw notification, extracts and normalizes its
// payload and records the invoice status. Malformed JSON and unrecognized
// status values are tolerated: dropping a legitimate payment notification is
// worse than recording an odd status tag.
func (p *Processor) Process(ctx context.Context, rawBody []byte, signature string) error {
	if p.secret != "" && !ValidSignature(p.secret, rawBody, signature) {
		p.logger.WarnContext(ctx, "Rejected webhook with invalid signature")
		return ErrInvalidSignature
	}

	payload := parsePayload(rawBody)

	invoiceID, ok := extractInvoiceID(payload)
	if !ok {
		p.logger.WarnContext(ctx, "Rejected webhook without invoice id")
		return ErrMissingInvoiceID
	}

	rawStatus, _ := stringField(payload, "status")
	normalized := status.Normalize(rawStatus)

	updatedAt := p.now().UTC().Format(time.RFC3339)
	if err := p.store.Upsert(ctx, invoiceID, normalized, updatedAt); err != nil {
		p.logger.ErrorContext(ctx, fmt.Sprintf("Error persisting invoice status: %v", err))
		return err
	}

	p.logger.InfoContext(ctx, "Recorded invoice status",
		slog.String("invoice_id", invoiceID),
		slog.String("status", normalized))
	return nil
}

// parsePayload tolerates malformed or non-object bodies by falling back to an
// empty payload; the missing-invoice-id check downstream decides the outcome.
func parsePayload(raw []byte) map[string]any {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

func extractInvoiceID(payload map[string]any) (string, bool) {
	for _, key := range invoiceIDKeys {
		if v, ok := stringField(payload, key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func stringField(payload map[string]any, key string) (string, bool) {
	v, ok := payload[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}
