package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) List(ctx context.Context, userID uuid.UUID) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) Create(ctx context.Context, userID uuid.UUID, input service.CreateInvoiceInput) (*domain.Invoice, int, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) Update(ctx context.Context, userID uuid.UUID, input service.UpdateInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Get(ctx context.Context, userID uuid.UUID, index int) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Summary(ctx context.Context, userID uuid.UUID) (*service.InvoiceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceSummary), args.Error(1)
}

func (m *MockInvoiceService) RenderPDF(ctx context.Context, userID uuid.UUID, index int) ([]byte, *domain.Invoice, error) {
	args := m.Called(ctx, userID, index)
	var pdf []byte
	if args.Get(0) != nil {
		pdf = args.Get(0).([]byte)
	}
	var inv *domain.Invoice
	if args.Get(1) != nil {
		inv = args.Get(1).(*domain.Invoice)
	}
	return pdf, inv, args.Error(2)
}

func (m *MockInvoiceService) SendInvoice(ctx context.Context, userID uuid.UUID, index int, input service.SendInvoiceInput) (string, error) {
	args := m.Called(ctx, userID, index, input)
	return args.String(0), args.Error(1)
}
