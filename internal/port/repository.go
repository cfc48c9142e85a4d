package port

import (
	"context"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
)

// UserRepository defines the contract for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// InvoiceRepository defines the contract for invoice persistence. Invoices
// are addressed by their 0-based position within the owner's collection,
// matching the wire-level index.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Invoice, int, error)
	GetByPosition(ctx context.Context, userID uuid.UUID, position int) (*domain.Invoice, error)
	UpdatePayment(ctx context.Context, userID uuid.UUID, position int, update domain.PaymentUpdate) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
