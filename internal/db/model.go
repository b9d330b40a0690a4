package db

// InvoiceEntity is the only persisted record: the last known status of a
// payment transaction. Timestamps are stored as ISO-8601 UTC text with a
// trailing Z, matching what the gateway-facing surfaces report.
type InvoiceEntity struct {
	InvoiceID string
	Status    string
	UpdatedAt string
}
