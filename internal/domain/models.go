package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns a collection of invoices.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Party is a biller or client contact block on an invoice.
type Party struct {
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	GSTIN        string `json:"gstin,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
}

// LineItem is a single billable row on an invoice. All numeric fields pass
// through Number so absent or non-numeric form values read as zero and the
// invoice stays renderable.
type LineItem struct {
	Description string `json:"description"`
	Quantity    Number `json:"qty"`
	Rate        Number `json:"rate"`
	TaxPercent  Number `json:"tax"`
	GSTPercent  Number `json:"gst"`
	VATPercent  Number `json:"vat"`
	Discount    Number `json:"discount"`
}

// Invoice is a persisted invoice owned by exactly one user. Header, parties,
// and line items are immutable after creation; only the payment fields change
// through the update path. Position is the 0-based ordinal within the owner's
// collection and doubles as the wire-level index.
type Invoice struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	UserID          uuid.UUID       `db:"user_id" json:"-"`
	Position        int             `db:"position" json:"-"`
	InvoiceNo       string          `db:"invoice_no" json:"invoiceNo"`
	InvoiceDate     string          `db:"invoice_date" json:"invoiceDate,omitempty"`
	LogoURL         string          `db:"logo_url" json:"logo,omitempty"`
	BilledByName    string          `db:"billed_by_name" json:"billedByName"`
	BilledToName    string          `db:"billed_to_name" json:"billedToName"`
	BilledBy        json.RawMessage `db:"billed_by" json:"billedBy,omitempty"`
	BilledTo        json.RawMessage `db:"billed_to" json:"billedTo,omitempty"`
	Items           json.RawMessage `db:"items" json:"items,omitempty"`
	GrandTotal      float64         `db:"grand_total" json:"grandTotal"`
	PaymentStatus   PaymentStatus   `db:"payment_status" json:"paymentStatus"`
	AmountPaid      float64         `db:"amount_paid" json:"amountPaid"`
	AmountRemaining float64         `db:"amount_remaining" json:"amountRemaining"`
	DueDate         *time.Time      `db:"due_date" json:"dueDate"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
}

// PaymentUpdate carries the mutable payment fields written by the
// payment-update path.
type PaymentUpdate struct {
	Status          PaymentStatus
	AmountPaid      float64
	AmountRemaining float64
	DueDate         *time.Time
}

// LineItems decodes the stored line-item sequence. A missing or malformed
// items column yields nil rather than an error.
func (i *Invoice) LineItems() []LineItem {
	if len(i.Items) == 0 {
		return nil
	}
	var items []LineItem
	if err := json.Unmarshal(i.Items, &items); err != nil {
		return nil
	}
	return items
}

// BilledByParty decodes the stored biller block.
func (i *Invoice) BilledByParty() Party {
	var p Party
	if len(i.BilledBy) > 0 {
		_ = json.Unmarshal(i.BilledBy, &p)
	}
	return p
}

// BilledToParty decodes the stored client block.
func (i *Invoice) BilledToParty() Party {
	var p Party
	if len(i.BilledTo) > 0 {
		_ = json.Unmarshal(i.BilledTo, &p)
	}
	return p
}
