package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

type stubRenderer struct {
	out []byte
	err error
}

func (s *stubRenderer) Render(*domain.Invoice) ([]byte, error) {
	return s.out, s.err
}

func newInvoiceService(repo *mocks.MockInvoiceRepo) service.InvoiceService {
	return service.NewInvoiceService(repo, &stubRenderer{out: []byte("%PDF")}, nil, nil, 3600)
}

func createInput(status string, amountPaid float64, dueDate string) service.CreateInvoiceInput {
	return service.CreateInvoiceInput{
		Header: service.InvoiceHeaderInput{InvoiceNo: "INV-001", InvoiceDate: "2026-08-01"},
		BilledBy: domain.Party{BusinessName: "Acme Ltd"},
		BilledTo: domain.Party{BusinessName: "Client Co", Email: "client@test.com"},
		Items: []domain.LineItem{
			{Description: "Consulting", Quantity: 2, Rate: 50, TaxPercent: 10, Discount: 5},
		},
		Payment: service.PaymentInput{
			PaymentStatus: status,
			AmountPaid:    domain.Number(amountPaid),
			DueDate:       dueDate,
		},
		GrandTotal: 999, // ignored: recomputed from items
	}
}

func TestInvoiceService_Create_RecomputesGrandTotal(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		// 2*50 = 100, +10% tax = 110, -5 discount = 105
		return inv.GrandTotal == 105 &&
			inv.PaymentStatus == domain.PaymentStatusPartiallyPaid &&
			inv.AmountPaid == 40 &&
			inv.AmountRemaining == 65 &&
			inv.BilledByName == "Acme Ltd" &&
			inv.BilledToName == "Client Co"
	})).Return(nil)
	repo.On("CountByUser", mock.Anything, userID).Return(1, nil)

	inv, total, err := svc.Create(context.Background(), userID, createInput("partially_paid", 40, "2026-09-15"))

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2026-09-15", inv.DueDate.Format("2006-01-02"))
	repo.AssertExpectations(t)
}

func TestInvoiceService_Create_PaidClearsDueDate(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.PaymentStatus == domain.PaymentStatusPaid &&
			inv.AmountPaid == 105 &&
			inv.AmountRemaining == 0 &&
			inv.DueDate == nil
	})).Return(nil)
	repo.On("CountByUser", mock.Anything, userID).Return(3, nil)

	_, total, err := svc.Create(context.Background(), userID, createInput("paid", 0, ""))

	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestInvoiceService_Create_TrustsClientTotalWithoutItems(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	input := createInput("to_be_paid", 0, "2026-10-01")
	input.Items = nil
	input.GrandTotal = 250

	repo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.GrandTotal == 250 && inv.AmountRemaining == 250 && inv.AmountPaid == 0
	})).Return(nil)
	repo.On("CountByUser", mock.Anything, userID).Return(1, nil)

	_, _, err := svc.Create(context.Background(), userID, input)
	require.NoError(t, err)
}

func TestInvoiceService_Create_InvalidStatus(t *testing.T) {
	svc := newInvoiceService(new(mocks.MockInvoiceRepo))

	_, _, err := svc.Create(context.Background(), uuid.New(), createInput("settled", 0, "2026-10-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestInvoiceService_Create_DueDateRequiredWhenUnpaid(t *testing.T) {
	svc := newInvoiceService(new(mocks.MockInvoiceRepo))

	_, _, err := svc.Create(context.Background(), uuid.New(), createInput("to_be_paid", 0, ""))
	assert.ErrorIs(t, err, domain.ErrDueDateRequired)

	_, _, err = svc.Create(context.Background(), uuid.New(), createInput("partially_paid", 10, "not-a-date"))
	assert.ErrorIs(t, err, domain.ErrDueDateRequired)
}

func storedInvoice(userID uuid.UUID, status domain.PaymentStatus, grandTotal, paid, remaining float64) *domain.Invoice {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Invoice{
		ID:              uuid.New(),
		UserID:          userID,
		Position:        0,
		InvoiceNo:       "INV-001",
		GrandTotal:      grandTotal,
		PaymentStatus:   status,
		AmountPaid:      paid,
		AmountRemaining: remaining,
		DueDate:         &due,
		CreatedAt:       time.Now(),
	}
}

func float(v float64) *float64 { return &v }

func TestInvoiceService_Update_AmountPaidRederivesStatus(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("GetByPosition", mock.Anything, userID, 0).
		Return(storedInvoice(userID, domain.PaymentStatusPartiallyPaid, 105, 40, 65), nil)
	repo.On("UpdatePayment", mock.Anything, userID, 0, mock.MatchedBy(func(u domain.PaymentUpdate) bool {
		return u.Status == domain.PaymentStatusPaid &&
			u.AmountPaid == 105 &&
			u.AmountRemaining == 0 &&
			u.DueDate == nil
	})).Return(nil)

	inv, err := svc.Update(context.Background(), userID, service.UpdateInvoiceInput{
		Index:   0,
		Invoice: service.InvoicePatchInput{AmountPaid: float(105)},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, inv.PaymentStatus)
	assert.Zero(t, inv.AmountRemaining)
	repo.AssertExpectations(t)
}

func TestInvoiceService_Update_RejectsDecrease(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("GetByPosition", mock.Anything, userID, 0).
		Return(storedInvoice(userID, domain.PaymentStatusPartiallyPaid, 105, 40, 65), nil)

	_, err := svc.Update(context.Background(), userID, service.UpdateInvoiceInput{
		Index:   0,
		Invoice: service.InvoicePatchInput{AmountPaid: float(30)},
	})

	assert.ErrorIs(t, err, domain.ErrAmountPaidDecreased)
	repo.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Update_RejectsExceedingTotal(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("GetByPosition", mock.Anything, userID, 0).
		Return(storedInvoice(userID, domain.PaymentStatusPartiallyPaid, 105, 40, 65), nil)

	_, err := svc.Update(context.Background(), userID, service.UpdateInvoiceInput{
		Index:   0,
		Invoice: service.InvoicePatchInput{AmountPaid: float(200)},
	})

	assert.ErrorIs(t, err, domain.ErrAmountExceedsTotal)
}

func TestInvoiceService_Update_PaidIsTerminal(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("GetByPosition", mock.Anything, userID, 0).
		Return(storedInvoice(userID, domain.PaymentStatusPaid, 105, 105, 0), nil)

	status := "to_be_paid"
	_, err := svc.Update(context.Background(), userID, service.UpdateInvoiceInput{
		Index:   0,
		Invoice: service.InvoicePatchInput{PaymentStatus: &status},
	})

	assert.ErrorIs(t, err, domain.ErrPaidInvoiceImmutable)
}

func TestInvoiceService_Update_UnknownIndex(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("GetByPosition", mock.Anything, userID, 9).Return(nil, domain.ErrInvoiceNotFound)

	_, err := svc.Update(context.Background(), userID, service.UpdateInvoiceInput{Index: 9})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestInvoiceService_Summary(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	invoices := []domain.Invoice{
		{GrandTotal: 100, AmountPaid: 100, AmountRemaining: 0, PaymentStatus: domain.PaymentStatusPaid},
		{GrandTotal: 200, AmountPaid: 50, AmountRemaining: 150, PaymentStatus: domain.PaymentStatusPartiallyPaid, DueDate: &past},
		{GrandTotal: 300, AmountPaid: 0, AmountRemaining: 300, PaymentStatus: domain.PaymentStatusToBePaid, DueDate: &future},
	}
	repo.On("ListByUser", mock.Anything, userID).Return(invoices, 3, nil)

	summary, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 600.0, summary.TotalBilled)
	assert.Equal(t, 150.0, summary.TotalPaid)
	assert.Equal(t, 450.0, summary.TotalPending)
	assert.Equal(t, 1, summary.OverdueCount)
}

func TestInvoiceService_List_NeverReturnsNil(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(repo)
	userID := uuid.New()

	repo.On("ListByUser", mock.Anything, userID).Return(nil, 0, nil)

	invoices, total, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, invoices)
	assert.Empty(t, invoices)
}

func TestInvoiceService_SendInvoice(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	sender := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(repo, &stubRenderer{out: []byte("%PDF")}, storage, sender, 3600)
	userID := uuid.New()

	inv := storedInvoice(userID, domain.PaymentStatusToBePaid, 105, 0, 105)
	repo.On("GetByPosition", mock.Anything, userID, 0).Return(inv, nil)
	storage.On("Put", mock.Anything, mock.Anything, []byte("%PDF"), "application/pdf").Return(nil)
	storage.On("GetPresignedURL", mock.Anything, mock.Anything, int64(3600)).
		Return("https://bucket.example/inv.pdf", nil)
	sender.On("SendInvoiceEmail", mock.Anything, "client@test.com", "INV-001", "https://bucket.example/inv.pdf").
		Return(nil)

	recipient, err := svc.SendInvoice(context.Background(), userID, 0, service.SendInvoiceInput{Email: "client@test.com"})

	require.NoError(t, err)
	assert.Equal(t, "client@test.com", recipient)
	storage.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestInvoiceService_SendInvoice_NotConfigured(t *testing.T) {
	svc := newInvoiceService(new(mocks.MockInvoiceRepo))

	_, err := svc.SendInvoice(context.Background(), uuid.New(), 0, service.SendInvoiceInput{Email: "x@test.com"})
	assert.ErrorIs(t, err, domain.ErrDeliveryNotConfigured)
}

func TestInvoiceService_SendInvoice_NoRecipient(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	sender := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(repo, &stubRenderer{out: []byte("%PDF")}, storage, sender, 3600)
	userID := uuid.New()

	inv := storedInvoice(userID, domain.PaymentStatusToBePaid, 105, 0, 105)
	repo.On("GetByPosition", mock.Anything, userID, 0).Return(inv, nil)

	_, err := svc.SendInvoice(context.Background(), userID, 0, service.SendInvoiceInput{})
	assert.ErrorIs(t, err, domain.ErrRecipientRequired)
}
