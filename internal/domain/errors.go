package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEmailNotRegistered   = errors.New("email not registered")
	ErrIncorrectPassword    = errors.New("incorrect password")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrAmountExceedsTotal   = errors.New("amount paid exceeds grand total")
	ErrAmountPaidDecreased  = errors.New("amount paid cannot be reduced")
	ErrPaidInvoiceImmutable = errors.New("paid invoice cannot be modified")
	ErrStatusNotAllowed     = errors.New("payment status not allowed for current balance")
	ErrDueDateRequired      = errors.New("due date is required for unpaid invoices")
	ErrRecipientRequired    = errors.New("recipient email is required")

	// ErrDeliveryNotConfigured is returned when invoice delivery is requested
	// but no archive bucket or email provider has been configured.
	ErrDeliveryNotConfigured = errors.New("invoice delivery is not configured")
)
