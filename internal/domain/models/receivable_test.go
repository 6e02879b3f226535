package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func openReceivable(amount, paid string, status ReceivableStatus) Receivable {
	a := decimal.RequireFromString(amount)
	p := decimal.RequireFromString(paid)
	return Receivable{
		ID:              1,
		ClientID:        1,
		Amount:          a,
		PaidAmount:      p,
		RemainingAmount: a.Sub(p),
		Status:          status,
	}
}

func TestReceivableApply_PartialThenPaid(t *testing.T) {
	rec := openReceivable("100.00", "0", ReceivablePending)

	applied := rec.Apply(decimal.RequireFromString("40"))
	assert.True(t, applied.Equal(decimal.RequireFromString("40")))
	assert.Equal(t, ReceivablePartial, rec.Status)
	assert.True(t, rec.RemainingAmount.Equal(decimal.RequireFromString("60")))

	applied = rec.Apply(decimal.RequireFromString("60"))
	assert.True(t, applied.Equal(decimal.RequireFromString("60")))
	assert.Equal(t, ReceivablePaid, rec.Status)
	assert.True(t, rec.RemainingAmount.IsZero())
	assert.True(t, rec.PaidAmount.Equal(rec.Amount))
}

func TestReceivableApply_CapsAtRemaining(t *testing.T) {
	rec := openReceivable("100.00", "70", ReceivablePartial)

	applied := rec.Apply(decimal.RequireFromString("500"))
	assert.True(t, applied.Equal(decimal.RequireFromString("30")), "applied %s", applied)
	assert.Equal(t, ReceivablePaid, rec.Status)
	assert.True(t, rec.RemainingAmount.IsZero())
}

func TestReceivableApply_RefusesClosedRows(t *testing.T) {
	for _, status := range []ReceivableStatus{ReceivablePaid, ReceivableCancelled, ReceivableOverdue} {
		rec := openReceivable("100.00", "0", status)
		before := rec

		applied := rec.Apply(decimal.RequireFromString("50"))
		assert.True(t, applied.IsZero(), "status %s accepted a payment", status)
		assert.Equal(t, before, rec, "status %s row was mutated", status)
	}
}

func TestReceivableApply_IgnoresNonPositiveAvailable(t *testing.T) {
	rec := openReceivable("100.00", "0", ReceivablePending)

	applied := rec.Apply(decimal.Zero)
	assert.True(t, applied.IsZero())
	assert.Equal(t, ReceivablePending, rec.Status)

	applied = rec.Apply(decimal.RequireFromString("-5"))
	assert.True(t, applied.IsZero())
	assert.Equal(t, ReceivablePending, rec.Status)
}

func TestReceivableStatus_CanApplyPayment(t *testing.T) {
	assert.True(t, ReceivablePending.CanApplyPayment())
	assert.True(t, ReceivablePartial.CanApplyPayment())
	assert.False(t, ReceivablePaid.CanApplyPayment())
	assert.False(t, ReceivableOverdue.CanApplyPayment())
	assert.False(t, ReceivableCancelled.CanApplyPayment())
}
