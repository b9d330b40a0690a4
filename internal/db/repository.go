package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// Upsert records the latest known status for an invoice. The insert-or-replace
// is keyed by invoice_id, so concurrent writes for the same invoice serialize
// inside the engine and the last write to complete wins whole-record.
func (r *InvoiceRepository) Upsert(ctx context.Context, invoiceID, status, updatedAt string) error {
	query := `INSERT INTO invoices (invoice_id, status, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (invoice_id)
	          DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query, invoiceID, status, updatedAt)
	if err != nil {
		return errors.Wrapf(err, "upserting invoice %s", invoiceID)
	}
	return nil
}

// GetStatus returns the stored status for an invoice. A missing record is not
// an error: found is false and err is nil.
func (r *InvoiceRepository) GetStatus(ctx context.Context, invoiceID string) (string, bool, error) {
	query := `SELECT status FROM invoices WHERE invoice_id = $1`
	row := r.pool.QueryRow(ctx, query, invoiceID)

	var status string
	err := row.Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "looking up invoice %s", invoiceID)
	}
	return status, true, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID string) (*InvoiceEntity, error) {
	query := `SELECT invoice_id, status, updated_at FROM invoices WHERE invoice_id = $1`
	row := r.pool.QueryRow(ctx, query, invoiceID)

	var entity InvoiceEntity
	err := row.Scan(&entity.InvoiceID, &entity.Status, &entity.UpdatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching invoice %s", invoiceID)
	}
	return &entity, nil
}
