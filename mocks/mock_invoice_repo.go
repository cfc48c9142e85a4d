package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) GetByPosition(ctx context.Context, userID uuid.UUID, position int) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) UpdatePayment(ctx context.Context, userID uuid.UUID, position int, update domain.PaymentUpdate) error {
	args := m.Called(ctx, userID, position, update)
	return args.Error(0)
}

func (m *MockInvoiceRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
