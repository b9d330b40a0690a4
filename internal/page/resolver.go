package page

import (
	"context"
	"strings"

	"payment-webhook-service/internal/status"
)

const (
	// Shown when the landing page is opened without an invoice parameter.
	placeholderInvoiceID = "N/D"

	// AutoRedirectSeconds is the fixed delay before the page forwards the
	// buyer to the Discord channel.
	AutoRedirectSeconds = 10
)

type InvoiceStore interface {
	GetStatus(ctx context.Context, invoiceID string) (string, bool, error)
}

type View struct {
	InvoiceID string
	IsPaid    bool
}

type Resolver struct {
	store InvoiceStore
}

func NewResolver(store InvoiceStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve decides what the post-checkout page shows for an invoice. The
// policy is optimistic about unknowns: an invoice with no stored record is
// treated as paid, because gateways usually deliver the webhook before (or
// while) redirecting the buyer, so "no record yet" almost always means the
// webhook is still in flight rather than that the payment failed.
func (r *Resolver) Resolve(ctx context.Context, invoiceID string) (View, error) {
	invoiceID = strings.TrimSpace(invoiceID)

	isPaid := true
	if invoiceID != "" {
		st, found, err := r.store.GetStatus(ctx, invoiceID)
		if err != nil {
			return View{}, err
		}
		if found {
			isPaid = status.IsSuccess(st)
		}
	}

	display := invoiceID
	if display == "" {
		display = placeholderInvoiceID
	}

	return View{InvoiceID: display, IsPaid: isPaid}, nil
}
