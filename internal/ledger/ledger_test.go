package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
)

func item(qty, rate, tax, gst, vat, discount float64) domain.LineItem {
	return domain.LineItem{
		Quantity:    domain.Number(qty),
		Rate:        domain.Number(rate),
		TaxPercent:  domain.Number(tax),
		GSTPercent:  domain.Number(gst),
		VATPercent:  domain.Number(vat),
		Discount:    domain.Number(discount),
		Description: "test item",
	}
}

func TestComputeLineTotal_Basic(t *testing.T) {
	// 2 * 50 * 1.10 - 5 = 105
	got := ComputeLineTotal(item(2, 50, 10, 0, 0, 5))
	assert.InDelta(t, 105.0, got, 1e-9)
}

func TestComputeLineTotal_ZeroQuantityYieldsNegativeDiscount(t *testing.T) {
	got := ComputeLineTotal(item(0, 100, 18, 0, 0, 7.5))
	assert.InDelta(t, -7.5, got, 1e-9)
}

func TestComputeLineTotal_LinearInQuantityAndRate(t *testing.T) {
	base := ComputeLineTotal(item(1, 20, 5, 5, 5, 0))
	doubleQty := ComputeLineTotal(item(2, 20, 5, 5, 5, 0))
	doubleRate := ComputeLineTotal(item(1, 40, 5, 5, 5, 0))
	assert.InDelta(t, 2*base, doubleQty, 1e-9)
	assert.InDelta(t, 2*base, doubleRate, 1e-9)
}

func TestComputeLineTotal_AllRatesCombine(t *testing.T) {
	// 10 * 10 = 100; +(10+5+3)% = 118; -18 = 100
	got := ComputeLineTotal(item(10, 10, 10, 5, 3, 18))
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestComputeLineTotal_DiscountMayExceedTaxedAmount(t *testing.T) {
	got := ComputeLineTotal(item(1, 10, 0, 0, 0, 25))
	assert.InDelta(t, -15.0, got, 1e-9)
}

func TestComputeGrandTotal_EmptyIsZero(t *testing.T) {
	assert.Zero(t, ComputeGrandTotal(nil))
	assert.Zero(t, ComputeGrandTotal([]domain.LineItem{}))
}

func TestComputeGrandTotal_PermutationInvariant(t *testing.T) {
	items := []domain.LineItem{
		item(2, 50, 10, 0, 0, 5),
		item(1, 10, 0, 0, 0, 25),
		item(3, 7.25, 0, 18, 0, 0),
		item(0, 99, 5, 5, 5, 1),
	}
	want := ComputeGrandTotal(items)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.LineItem, len(items))
		copy(shuffled, items)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.InDelta(t, want, ComputeGrandTotal(shuffled), 1e-9)
	}
}

func TestComputeGrandTotal_Scenario(t *testing.T) {
	got := ComputeGrandTotal([]domain.LineItem{item(2, 50, 10, 0, 0, 5)})
	assert.InDelta(t, 105.0, got, 1e-9)
}

func TestDerive_Paid(t *testing.T) {
	due := time.Now()
	for _, gt := range []float64{0, 1, 105, 99999.99} {
		state := Derive(domain.PaymentStatusPaid, gt, 123, &due)
		assert.Equal(t, domain.PaymentStatusPaid, state.Status)
		assert.Equal(t, gt, state.AmountPaid)
		assert.Zero(t, state.AmountRemaining)
		assert.Nil(t, state.DueDate, "paid invoices carry no due date")
	}
}

func TestDerive_PartiallyPaid(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	state := Derive(domain.PaymentStatusPartiallyPaid, 105, 40, &due)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, state.Status)
	assert.InDelta(t, 40.0, state.AmountPaid, 1e-9)
	assert.InDelta(t, 65.0, state.AmountRemaining, 1e-9)
	require.NotNil(t, state.DueDate)
	assert.Equal(t, due, *state.DueDate)
}

func TestDerive_PartiallyPaid_NegativeAmountClampedToZero(t *testing.T) {
	state := Derive(domain.PaymentStatusPartiallyPaid, 100, -50, nil)
	assert.Zero(t, state.AmountPaid)
	assert.InDelta(t, 100.0, state.AmountRemaining, 1e-9)
}

func TestDerive_PartiallyPaid_OverpaymentAbsorbed(t *testing.T) {
	// Overpayment at creation is absorbed, not rejected: remaining floors at 0.
	state := Derive(domain.PaymentStatusPartiallyPaid, 100, 150, nil)
	assert.InDelta(t, 150.0, state.AmountPaid, 1e-9)
	assert.Zero(t, state.AmountRemaining)
}

func TestDerive_ToBePaid(t *testing.T) {
	due := time.Now()
	state := Derive(domain.PaymentStatusToBePaid, 105, 40, &due)
	assert.Equal(t, domain.PaymentStatusToBePaid, state.Status)
	assert.Zero(t, state.AmountPaid)
	assert.InDelta(t, 105.0, state.AmountRemaining, 1e-9)
	assert.NotNil(t, state.DueDate)
}

func TestValidateAmountPaidEdit(t *testing.T) {
	assert.NoError(t, ValidateAmountPaidEdit(40, 60, 105))
	assert.NoError(t, ValidateAmountPaidEdit(40, 40, 105))
	assert.ErrorIs(t, ValidateAmountPaidEdit(40, 110, 105), domain.ErrAmountExceedsTotal)
	assert.ErrorIs(t, ValidateAmountPaidEdit(40, 30, 105), domain.ErrAmountPaidDecreased)
}

func TestApplyEdit_InvariantHoldsAfterAcceptedEdits(t *testing.T) {
	const grandTotal = 105.0
	state := Derive(domain.PaymentStatusToBePaid, grandTotal, 0, nil)

	for _, amount := range []float64{10, 40, 40, 70, 105} {
		a := amount
		next, err := ApplyEdit(state, EditInput{AmountPaid: &a}, grandTotal)
		require.NoError(t, err)
		assert.InDelta(t, grandTotal, next.AmountPaid+next.AmountRemaining, 1e-9)
		assert.GreaterOrEqual(t, next.AmountPaid, state.AmountPaid,
			"accepted edits never decrease amount paid")
		state = next
	}
	assert.Equal(t, domain.PaymentStatusPaid, state.Status)
}

func TestApplyEdit_MonotonicityRejected(t *testing.T) {
	state := Derive(domain.PaymentStatusPartiallyPaid, 105, 40, nil)
	proposed := 30.0
	_, err := ApplyEdit(state, EditInput{AmountPaid: &proposed}, 105)
	assert.ErrorIs(t, err, domain.ErrAmountPaidDecreased)
}

func TestApplyEdit_ExceedsTotalRejected(t *testing.T) {
	state := Derive(domain.PaymentStatusPartiallyPaid, 105, 40, nil)
	proposed := 106.0
	_, err := ApplyEdit(state, EditInput{AmountPaid: &proposed}, 105)
	assert.ErrorIs(t, err, domain.ErrAmountExceedsTotal)
}

func TestApplyEdit_FullPaymentBecomesPaid(t *testing.T) {
	state := Derive(domain.PaymentStatusPartiallyPaid, 105, 40, nil)
	proposed := 105.0
	next, err := ApplyEdit(state, EditInput{AmountPaid: &proposed}, 105)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, next.Status)
	assert.Zero(t, next.AmountRemaining)
	assert.Nil(t, next.DueDate)
}

func TestApplyEdit_PaidIsTerminal(t *testing.T) {
	state := Derive(domain.PaymentStatusPaid, 105, 0, nil)

	proposed := 105.0
	_, err := ApplyEdit(state, EditInput{AmountPaid: &proposed}, 105)
	assert.ErrorIs(t, err, domain.ErrPaidInvoiceImmutable)

	target := domain.PaymentStatusToBePaid
	_, err = ApplyEdit(state, EditInput{Status: &target}, 105)
	assert.ErrorIs(t, err, domain.ErrPaidInvoiceImmutable)
}

func TestApplyEdit_InconsistentStatusSelectionRejected(t *testing.T) {
	// Settled balance may only be labeled paid.
	state := PaymentState{
		Status:          domain.PaymentStatusPartiallyPaid,
		AmountPaid:      105,
		AmountRemaining: 0,
	}
	target := domain.PaymentStatusToBePaid
	_, err := ApplyEdit(state, EditInput{Status: &target}, 105)
	assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)

	// Outstanding balance may not be labeled paid.
	state = Derive(domain.PaymentStatusPartiallyPaid, 105, 40, nil)
	target = domain.PaymentStatusPaid
	_, err = ApplyEdit(state, EditInput{Status: &target}, 105)
	assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)
}

func TestApplyEdit_UnknownStatusRejected(t *testing.T) {
	state := Derive(domain.PaymentStatusToBePaid, 105, 0, nil)
	target := domain.PaymentStatus("refunded")
	_, err := ApplyEdit(state, EditInput{Status: &target}, 105)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestStatusSelectable(t *testing.T) {
	assert.True(t, StatusSelectable(domain.PaymentStatusPaid, 105, 0))
	assert.False(t, StatusSelectable(domain.PaymentStatusPaid, 40, 65))
	assert.True(t, StatusSelectable(domain.PaymentStatusPartiallyPaid, 40, 65))
	assert.False(t, StatusSelectable(domain.PaymentStatusPartiallyPaid, 0, 105))
	assert.False(t, StatusSelectable(domain.PaymentStatusPartiallyPaid, 105, 0))
	assert.True(t, StatusSelectable(domain.PaymentStatusToBePaid, 0, 105))
	assert.False(t, StatusSelectable(domain.PaymentStatusToBePaid, 40, 65))
	assert.False(t, StatusSelectable(domain.PaymentStatus("bogus"), 0, 105))
}
