package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	invoice.CreatedAt = time.Now().UTC()

	// The position is assigned in the same statement so a new invoice always
	// appends to the end of the owner's collection. Concurrent creates on one
	// account race with last-writer-wins semantics, same as the rest of the
	// collection handling.
	query := `INSERT INTO invoices (
			id, user_id, position, invoice_no, invoice_date, logo_url,
			billed_by_name, billed_to_name, billed_by, billed_to, items,
			grand_total, payment_status, amount_paid, amount_remaining,
			due_date, created_at)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM invoices WHERE user_id = $2),
			$3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING position`

	err := r.db.QueryRowContext(ctx, query,
		invoice.ID, invoice.UserID, invoice.InvoiceNo, invoice.InvoiceDate,
		invoice.LogoURL, invoice.BilledByName, invoice.BilledToName,
		nullableJSON(invoice.BilledBy), nullableJSON(invoice.BilledTo), nullableJSON(invoice.Items),
		invoice.GrandTotal, invoice.PaymentStatus, invoice.AmountPaid,
		invoice.AmountRemaining, invoice.DueDate, invoice.CreatedAt,
	).Scan(&invoice.Position)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Invoice, int, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices WHERE user_id = $1 ORDER BY position ASC", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByUser: %w", err)
	}
	return invoices, len(invoices), nil
}

func (r *invoiceRepo) GetByPosition(ctx context.Context, userID uuid.UUID, position int) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM invoices WHERE user_id = $1 AND position = $2", userID, position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByPosition: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) UpdatePayment(ctx context.Context, userID uuid.UUID, position int, update domain.PaymentUpdate) error {
	query := `UPDATE invoices
		SET payment_status = $1, amount_paid = $2, amount_remaining = $3, due_date = $4
		WHERE user_id = $5 AND position = $6`
	result, err := r.db.ExecContext(ctx, query,
		update.Status, update.AmountPaid, update.AmountRemaining, update.DueDate,
		userID, position)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdatePayment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE user_id = $1", userID)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.CountByUser: %w", err)
	}
	return total, nil
}

// nullableJSON maps an empty raw message to NULL so jsonb columns never store
// the empty string.
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
