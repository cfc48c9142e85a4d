package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceEmail(ctx context.Context, toEmail, invoiceNo, downloadURL string) error {
	args := m.Called(ctx, toEmail, invoiceNo, downloadURL)
	return args.Error(0)
}
