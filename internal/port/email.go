package port

import "context"

// EmailSender defines the contract for delivering invoices to clients.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, toEmail, invoiceNo, downloadURL string) error
}
