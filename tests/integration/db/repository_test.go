package db

import (
	"context"
	"log"
	"testing"
	"time"

	"payment-webhook-service/internal/db"
	"payment-webhook-service/tests/testhelpers"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InvoiceRepositoryTestSuite struct {
	suite.Suite
	pgContainer *testhelpers.PostgresContainer
	pool        *pgxpool.Pool
	sut         *db.InvoiceRepository
	ctx         context.Context
}

func (s *InvoiceRepositoryTestSuite) SetupSuite() {
	time.Local = time.UTC

	s.ctx = context.Background()
	pgContainer, err := testhelpers.CreatePostgresContainer(s.ctx)
	if err != nil {
		log.Fatal(err)
	}
	s.pgContainer = pgContainer

	db.RunMigrations(pgContainer.ConnectionString, "../../../migrations")

	pool, err := db.GetPool(pgContainer.ConnectionString)
	if err != nil {
		log.Fatal(err)
	}

	s.pool = pool
	s.sut = db.NewInvoiceRepository(pool)
}

func (s *InvoiceRepositoryTestSuite) TearDownSuite() {
	s.pool.Close()

	if err := s.pgContainer.Terminate(s.ctx); err != nil {
		log.Fatalf("error terminating postgres container: %s", err)
	}
}

func (s *InvoiceRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "DELETE FROM invoices")
	if err != nil {
		log.Fatalf("error truncating invoices table: %s", err)
	}
}

func (s *InvoiceRepositoryTestSuite) TestUpsertCreates() {
	t := s.T()

	err := s.sut.Upsert(s.ctx, "INV-1", "paid", "2026-08-28T10:00:00Z")
	assert.NoError(t, err)

	entity, err := s.sut.GetByID(s.ctx, "INV-1")
	assert.NoError(t, err)
	assert.Equal(t, "INV-1", entity.InvoiceID)
	assert.Equal(t, "paid", entity.Status)
	assert.Equal(t, "2026-08-28T10:00:00Z", entity.UpdatedAt)
}

func (s *InvoiceRepositoryTestSuite) TestUpsertReplacesWholeRecord() {
	t := s.T()

	err := s.sut.Upsert(s.ctx, "INV-1", "received", "2026-08-28T10:00:00Z")
	assert.NoError(t, err)

	err = s.sut.Upsert(s.ctx, "INV-1", "paid", "2026-08-28T10:05:00Z")
	assert.NoError(t, err)

	entity, err := s.sut.GetByID(s.ctx, "INV-1")
	assert.NoError(t, err)
	assert.Equal(t, "paid", entity.Status)
	assert.Equal(t, "2026-08-28T10:05:00Z", entity.UpdatedAt)

	var count int
	err = s.pool.QueryRow(s.ctx, "SELECT count(*) FROM invoices WHERE invoice_id = $1", "INV-1").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func (s *InvoiceRepositoryTestSuite) TestGetStatus() {
	t := s.T()

	err := s.sut.Upsert(s.ctx, "INV-1", "failed", "2026-08-28T10:00:00Z")
	assert.NoError(t, err)

	status, found, err := s.sut.GetStatus(s.ctx, "INV-1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "failed", status)
}

func (s *InvoiceRepositoryTestSuite) TestGetStatusMissingIsNotAnError() {
	t := s.T()

	status, found, err := s.sut.GetStatus(s.ctx, "UNKNOWN-1")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, status)
}

func (s *InvoiceRepositoryTestSuite) TestConcurrentUpsertsOnSameInvoice() {
	t := s.T()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(n int) {
			done <- s.sut.Upsert(s.ctx, "INV-1", "paid", "2026-08-28T10:00:00Z")
		}(i)
	}
	for i := 0; i < 10; i++ {
		assert.NoError(t, <-done)
	}

	entity, err := s.sut.GetByID(s.ctx, "INV-1")
	assert.NoError(t, err)
	assert.Equal(t, "paid", entity.Status)
	assert.Equal(t, "2026-08-28T10:00:00Z", entity.UpdatedAt)
}

func TestInvoiceRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceRepositoryTestSuite))
}
