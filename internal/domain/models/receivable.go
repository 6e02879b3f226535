package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus tracks how much of a receivable has been collected.
type ReceivableStatus string

const (
	ReceivablePending   ReceivableStatus = "pending"
	ReceivablePartial   ReceivableStatus = "partial"
	ReceivablePaid      ReceivableStatus = "paid"
	ReceivableOverdue   ReceivableStatus = "overdue"
	ReceivableCancelled ReceivableStatus = "cancelled"
)

func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivablePending, ReceivablePartial, ReceivablePaid, ReceivableOverdue, ReceivableCancelled:
		return true
	}
	return false
}

// IsTerminal reports states the allocator can never move again.
func (s ReceivableStatus) IsTerminal() bool {
	return s == ReceivablePaid || s == ReceivableCancelled
}

// CanApplyPayment reports whether the allocator may touch a receivable
// in this state. Overdue receivables are set aside by the sweep and are
// not part of the allocation candidate set.
func (s ReceivableStatus) CanApplyPayment() bool {
	return s == ReceivablePending || s == ReceivablePartial
}

// Receivable is an amount owed by a client, optionally tied to a booking.
// Invariant: RemainingAmount == Amount - PaidAmount and never negative.
type Receivable struct {
	ID              int64            `json:"id"`
	ClientID        int64            `json:"client_id"`
	BookingID       *int64           `json:"booking_id,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	PaidAmount      decimal.Decimal  `json:"paid_amount"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
	DueDate         *time.Time       `json:"due_date,omitempty"`
	Status          ReceivableStatus `json:"status"`
	Description     string           `json:"description,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Apply consumes up to available from the receivable and returns the
// applied slice. The applied amount is capped at RemainingAmount so the
// remainder can never go negative; status moves to paid exactly when
// nothing remains, else partial.
func (r *Receivable) Apply(available decimal.Decimal) decimal.Decimal {
	if !r.Status.CanApplyPayment() || !available.IsPositive() {
		return decimal.Zero
	}
	applied := decimal.Min(available, r.RemainingAmount)
	if !applied.IsPositive() {
		return decimal.Zero
	}
	r.PaidAmount = r.PaidAmount.Add(applied)
	r.RemainingAmount = r.RemainingAmount.Sub(applied)
	if r.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		r.Status = ReceivablePaid
	} else {
		r.Status = ReceivablePartial
	}
	return applied
}
