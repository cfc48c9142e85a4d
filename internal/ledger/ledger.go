// Package ledger holds the invoice financial computation shared by the
// creation path, the payment-update path, the PDF renderer, and the exports.
// Everything here is a pure function of its inputs; callers re-derive the
// full payment state on every change instead of patching stored values, so
// the amountPaid + amountRemaining == grandTotal invariant holds by
// construction.
package ledger

import (
	"math"
	"time"

	"invoicegen/internal/domain"
)

// PaymentState is the normalized financial snapshot of an invoice.
type PaymentState struct {
	Status          domain.PaymentStatus
	AmountPaid      float64
	AmountRemaining float64
	DueDate         *time.Time
}

// EditInput carries the fields a payment-tracking edit may change. Nil
// pointers mean "leave as is".
type EditInput struct {
	AmountPaid *float64
	Status     *domain.PaymentStatus
	DueDate    *time.Time
	DueDateSet bool
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeLineTotal returns the total for one line item:
// quantity*rate, plus (tax+gst+vat)% of that amount, minus discount.
// The result is not clamped; a discount larger than the taxed amount yields
// a negative subtotal that flows into the grand total.
func ComputeLineTotal(item domain.LineItem) float64 {
	qty := sanitize(item.Quantity.Float())
	rate := sanitize(item.Rate.Float())
	tax := sanitize(item.TaxPercent.Float())
	gst := sanitize(item.GSTPercent.Float())
	vat := sanitize(item.VATPercent.Float())
	discount := sanitize(item.Discount.Float())

	amount := qty * rate
	taxed := amount + amount*(tax+gst+vat)/100
	return taxed - discount
}

// ComputeGrandTotal sums ComputeLineTotal over the sequence. An empty
// sequence totals zero; presentation order does not affect the sum.
func ComputeGrandTotal(items []domain.LineItem) float64 {
	var sum float64
	for i := range items {
		sum += ComputeLineTotal(items[i])
	}
	return sum
}

// Derive builds the payment state for a given status and grand total.
// For partially_paid the raw amount is floored at zero and the remaining
// balance is floored at zero, so overpayment at creation is absorbed rather
// than rejected. A paid invoice carries no due date.
func Derive(status domain.PaymentStatus, grandTotal, rawAmountPaid float64, dueDate *time.Time) PaymentState {
	grandTotal = sanitize(grandTotal)

	switch status {
	case domain.PaymentStatusPaid:
		return PaymentState{
			Status:          domain.PaymentStatusPaid,
			AmountPaid:      grandTotal,
			AmountRemaining: 0,
		}
	case domain.PaymentStatusPartiallyPaid:
		paid := math.Max(0, sanitize(rawAmountPaid))
		return PaymentState{
			Status:          domain.PaymentStatusPartiallyPaid,
			AmountPaid:      paid,
			AmountRemaining: math.Max(0, grandTotal-paid),
			DueDate:         dueDate,
		}
	default:
		return PaymentState{
			Status:          domain.PaymentStatusToBePaid,
			AmountPaid:      0,
			AmountRemaining: grandTotal,
			DueDate:         dueDate,
		}
	}
}

// ValidateAmountPaidEdit checks a proposed amount-paid edit on a saved
// invoice. The amount may never exceed the grand total and never decrease:
// partial refunds are out of scope and must not silently reduce recorded
// payment.
func ValidateAmountPaidEdit(previous, proposed, grandTotal float64) error {
	if proposed > grandTotal {
		return domain.ErrAmountExceedsTotal
	}
	if proposed < previous {
		return domain.ErrAmountPaidDecreased
	}
	return nil
}

// StatusSelectable reports whether a user may directly select target given
// the current balance. The same predicate drives dropdown enablement on the
// tracking page and server-side validation, so the rule is defined once.
func StatusSelectable(target domain.PaymentStatus, amountPaid, amountRemaining float64) bool {
	switch target {
	case domain.PaymentStatusPaid:
		return amountRemaining == 0
	case domain.PaymentStatusPartiallyPaid:
		return amountPaid > 0 && amountRemaining > 0
	case domain.PaymentStatusToBePaid:
		return amountPaid == 0 && amountRemaining > 0
	}
	return false
}

// statusForBalance re-derives the status implied by a balance: settled
// invoices are paid, anything with recorded payment is partially paid, and
// the rest are still to be paid.
func statusForBalance(amountPaid, amountRemaining float64) domain.PaymentStatus {
	switch {
	case amountRemaining == 0:
		return domain.PaymentStatusPaid
	case amountPaid > 0:
		return domain.PaymentStatusPartiallyPaid
	default:
		return domain.PaymentStatusToBePaid
	}
}

// ApplyEdit applies a payment-tracking edit to the current state and returns
// the next state. Paid is terminal: once an invoice reaches paid through this
// path, every further edit is rejected. Amount edits are validated with
// ValidateAmountPaidEdit and the status is re-derived from the resulting
// balance; an explicit status selection must be consistent with that balance
// or it is rejected rather than applied.
func ApplyEdit(current PaymentState, edit EditInput, grandTotal float64) (PaymentState, error) {
	if current.Status == domain.PaymentStatusPaid {
		return PaymentState{}, domain.ErrPaidInvoiceImmutable
	}
	grandTotal = sanitize(grandTotal)

	next := current
	if edit.DueDateSet {
		next.DueDate = edit.DueDate
	}

	if edit.AmountPaid != nil {
		proposed := sanitize(*edit.AmountPaid)
		if err := ValidateAmountPaidEdit(current.AmountPaid, proposed, grandTotal); err != nil {
			return PaymentState{}, err
		}
		next.AmountPaid = proposed
		next.AmountRemaining = math.Max(0, grandTotal-proposed)
		next.Status = statusForBalance(next.AmountPaid, next.AmountRemaining)
	}

	if edit.Status != nil {
		target := *edit.Status
		if !target.Valid() {
			return PaymentState{}, domain.ErrInvalidPaymentStatus
		}
		if target != next.Status && !StatusSelectable(target, next.AmountPaid, next.AmountRemaining) {
			return PaymentState{}, domain.ErrStatusNotAllowed
		}
		next.Status = target
	}

	if next.Status == domain.PaymentStatusPaid {
		next.DueDate = nil
	}
	return next, nil
}
