package noop

import (
	"context"
	"log"

	"invoicegen/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs download URLs to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, toEmail, invoiceNo, downloadURL string) error {
	log.Printf("[NOOP EMAIL] Invoice %s for %s: %s", invoiceNo, toEmail, downloadURL)
	return nil
}
