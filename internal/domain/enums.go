package domain

// PaymentStatus describes the settlement state of an invoice.
type PaymentStatus string

const (
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusToBePaid      PaymentStatus = "to_be_paid"
)

// ValidPaymentStatuses maps each accepted status to its display label.
var ValidPaymentStatuses = map[PaymentStatus]string{
	PaymentStatusPaid:          "Paid",
	PaymentStatusPartiallyPaid: "Partially Paid",
	PaymentStatusToBePaid:      "To Be Paid",
}

// Valid reports whether s is one of the accepted payment statuses.
func (s PaymentStatus) Valid() bool {
	_, ok := ValidPaymentStatuses[s]
	return ok
}
