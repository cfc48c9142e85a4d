package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/ledger"
	"invoicegen/internal/port"
)

// dueDateLayout is the calendar-date format the clients submit.
const dueDateLayout = "2006-01-02"

// InvoiceHeaderInput carries the header block of a submitted invoice.
type InvoiceHeaderInput struct {
	InvoiceNo   string `json:"invoiceNo"`
	InvoiceDate string `json:"invoiceDate"`
	Logo        string `json:"logo"`
}

// PaymentInput carries the payment block of a submitted invoice.
type PaymentInput struct {
	PaymentStatus string        `json:"paymentStatus"`
	AmountPaid    domain.Number `json:"amountPaid"`
	DueDate       string        `json:"dueDate"`
}

// CreateInvoiceInput is the DTO for invoice creation. Numeric fields use
// domain.Number so half-filled forms still produce a storable invoice.
type CreateInvoiceInput struct {
	Header     InvoiceHeaderInput `json:"header"`
	BilledBy   domain.Party       `json:"billedBy"`
	BilledTo   domain.Party       `json:"billedTo"`
	Items      []domain.LineItem  `json:"items"`
	Payment    PaymentInput       `json:"payment"`
	GrandTotal domain.Number      `json:"grandTotal"`
}

// InvoicePatchInput carries the payment-tracking fields an edit may change.
// Absent fields are left as is; an explicit null due date clears it.
type InvoicePatchInput struct {
	AmountPaid    *float64 `json:"amountPaid"`
	PaymentStatus *string  `json:"paymentStatus"`
	DueDate       *string  `json:"dueDate"`
}

// UpdateInvoiceInput is the DTO for the payment-tracking edit. Index
// addresses the invoice within the caller's collection.
type UpdateInvoiceInput struct {
	Index   int               `json:"index"`
	Invoice InvoicePatchInput `json:"invoice"`
}

// SendInvoiceInput is the DTO for delivering an invoice PDF by email.
type SendInvoiceInput struct {
	Email string `json:"email"`
}

// InvoiceSummary aggregates the caller's collection for the dashboard.
type InvoiceSummary struct {
	TotalCount   int     `json:"totalCount"`
	TotalBilled  float64 `json:"totalBilled"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalPending float64 `json:"totalPending"`
	OverdueCount int     `json:"overdueCount"`
}

// PDFRenderer renders a stored invoice into a PDF document.
type PDFRenderer interface {
	Render(invoice *domain.Invoice) ([]byte, error)
}

// InvoiceService defines the invoice business logic contract.
type InvoiceService interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Invoice, int, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, int, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, userID uuid.UUID, index int) (*domain.Invoice, error)
	Summary(ctx context.Context, userID uuid.UUID) (*InvoiceSummary, error)
	RenderPDF(ctx context.Context, userID uuid.UUID, index int) ([]byte, *domain.Invoice, error)
	SendInvoice(ctx context.Context, userID uuid.UUID, index int, input SendInvoiceInput) (string, error)
}

type invoiceService struct {
	invoiceRepo   port.InvoiceRepository
	renderer      PDFRenderer
	storage       port.ObjectStorage
	email         port.EmailSender
	presignExpiry int64
	now           func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation. Storage and
// email may be nil when archiving or delivery is not configured.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	renderer PDFRenderer,
	storage port.ObjectStorage,
	email port.EmailSender,
	presignExpiry int64,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		renderer:      renderer,
		storage:       storage,
		email:         email,
		presignExpiry: presignExpiry,
		now:           time.Now,
	}
}

func (s *invoiceService) List(ctx context.Context, userID uuid.UUID) ([]domain.Invoice, int, error) {
	invoices, total, err := s.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, total, nil
}

func (s *invoiceService) Create(ctx context.Context, userID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, int, error) {
	status := domain.PaymentStatus(input.Payment.PaymentStatus)
	if !status.Valid() {
		return nil, 0, domain.ErrInvalidPaymentStatus
	}

	// The stored total is recomputed from the submitted items; the client's
	// figure is only trusted when no items were sent at all.
	grandTotal := input.GrandTotal.Float()
	if len(input.Items) > 0 {
		grandTotal = ledger.ComputeGrandTotal(input.Items)
	}

	var dueDate *time.Time
	if status != domain.PaymentStatusPaid {
		if input.Payment.DueDate == "" {
			return nil, 0, domain.ErrDueDateRequired
		}
		parsed, err := time.Parse(dueDateLayout, input.Payment.DueDate)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %q", domain.ErrDueDateRequired, input.Payment.DueDate)
		}
		dueDate = &parsed
	}

	state := ledger.Derive(status, grandTotal, input.Payment.AmountPaid.Float(), dueDate)

	billedBy, err := json.Marshal(input.BilledBy)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceService.Create encoding billedBy: %w", err)
	}
	billedTo, err := json.Marshal(input.BilledTo)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceService.Create encoding billedTo: %w", err)
	}
	items, err := json.Marshal(input.Items)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceService.Create encoding items: %w", err)
	}

	invoice := &domain.Invoice{
		UserID:          userID,
		InvoiceNo:       input.Header.InvoiceNo,
		InvoiceDate:     input.Header.InvoiceDate,
		LogoURL:         input.Header.Logo,
		BilledByName:    displayName(input.BilledBy),
		BilledToName:    displayName(input.BilledTo),
		BilledBy:        billedBy,
		BilledTo:        billedTo,
		Items:           items,
		GrandTotal:      grandTotal,
		PaymentStatus:   state.Status,
		AmountPaid:      state.AmountPaid,
		AmountRemaining: state.AmountRemaining,
		DueDate:         state.DueDate,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return invoice, total, nil
}

func (s *invoiceService) Update(ctx context.Context, userID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByPosition(ctx, userID, input.Index)
	if err != nil {
		return nil, err
	}

	edit := ledger.EditInput{AmountPaid: input.Invoice.AmountPaid}
	if input.Invoice.PaymentStatus != nil {
		status := domain.PaymentStatus(*input.Invoice.PaymentStatus)
		edit.Status = &status
	}
	if input.Invoice.DueDate != nil {
		edit.DueDateSet = true
		if *input.Invoice.DueDate != "" {
			parsed, err := time.Parse(dueDateLayout, *input.Invoice.DueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", domain.ErrDueDateRequired, *input.Invoice.DueDate)
			}
			edit.DueDate = &parsed
		}
	}

	current := ledger.PaymentState{
		Status:          invoice.PaymentStatus,
		AmountPaid:      invoice.AmountPaid,
		AmountRemaining: invoice.AmountRemaining,
		DueDate:         invoice.DueDate,
	}
	next, err := ledger.ApplyEdit(current, edit, invoice.GrandTotal)
	if err != nil {
		return nil, err
	}

	update := domain.PaymentUpdate{
		Status:          next.Status,
		AmountPaid:      next.AmountPaid,
		AmountRemaining: next.AmountRemaining,
		DueDate:         next.DueDate,
	}
	if err := s.invoiceRepo.UpdatePayment(ctx, userID, input.Index, update); err != nil {
		return nil, err
	}

	invoice.PaymentStatus = next.Status
	invoice.AmountPaid = next.AmountPaid
	invoice.AmountRemaining = next.AmountRemaining
	invoice.DueDate = next.DueDate
	return invoice, nil
}

func (s *invoiceService) Get(ctx context.Context, userID uuid.UUID, index int) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByPosition(ctx, userID, index)
}

func (s *invoiceService) Summary(ctx context.Context, userID uuid.UUID) (*InvoiceSummary, error) {
	invoices, total, err := s.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &InvoiceSummary{TotalCount: total}
	now := s.now()
	for i := range invoices {
		inv := &invoices[i]
		summary.TotalBilled += inv.GrandTotal
		summary.TotalPaid += inv.AmountPaid
		summary.TotalPending += inv.AmountRemaining
		if inv.AmountRemaining > 0 && inv.DueDate != nil && inv.DueDate.Before(now) {
			summary.OverdueCount++
		}
	}
	return summary, nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, userID uuid.UUID, index int) ([]byte, *domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByPosition(ctx, userID, index)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.renderer.Render(invoice)
	if err != nil {
		return nil, nil, fmt.Errorf("invoiceService.RenderPDF: %w", err)
	}
	return pdf, invoice, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, userID uuid.UUID, index int, input SendInvoiceInput) (string, error) {
	if s.storage == nil || s.email == nil {
		return "", domain.ErrDeliveryNotConfigured
	}
	pdf, invoice, err := s.RenderPDF(ctx, userID, index)
	if err != nil {
		return "", err
	}

	recipient := input.Email
	if recipient == "" {
		recipient = invoice.BilledToParty().Email
	}
	if recipient == "" {
		return "", domain.ErrRecipientRequired
	}

	key := fmt.Sprintf("invoices/%s/%s.pdf", userID, invoice.ID)
	if err := s.storage.Put(ctx, key, pdf, "application/pdf"); err != nil {
		return "", fmt.Errorf("invoiceService.SendInvoice archiving pdf: %w", err)
	}
	url, err := s.storage.GetPresignedURL(ctx, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("invoiceService.SendInvoice presigning: %w", err)
	}

	if err := s.email.SendInvoiceEmail(ctx, recipient, invoice.InvoiceNo, url); err != nil {
		return "", fmt.Errorf("invoiceService.SendInvoice sending email: %w", err)
	}
	return recipient, nil
}

// displayName prefers the business name and falls back to the contact name.
func displayName(p domain.Party) string {
	if p.BusinessName != "" {
		return p.BusinessName
	}
	return p.Name
}
