package services

import (
	"time"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	"github.com/shopspring/decimal"
)

// DeriveBookingStatus computes the display status for a booking from
// the stored lifecycle field, the payment total and the clock. It is
// never persisted; every read recomputes it so the value stays
// consistent with "now" and with the latest payments.
//
// Evaluation order, first match wins:
//  1. cancelled bookings stay cancelled, whatever else happened
//  2. fully paid (fare > 0) means completed, even before pickup
//  3. pickup time passed and not fully paid: in_progress
//  4. pickup within the next hour: confirmed
//  5. otherwise: pending
func DeriveBookingStatus(b models.Booking, paid decimal.Decimal, now time.Time) models.BookingStatus {
	if b.Status == models.BookingCancelled {
		return models.BookingCancelled
	}
	// A zero fare never counts as fully paid.
	if b.Fare.IsPositive() && paid.GreaterThanOrEqual(b.Fare) {
		return models.BookingCompleted
	}
	untilPickup := b.PickupAt.Sub(now)
	switch {
	case untilPickup < 0:
		return models.BookingInProgress
	case untilPickup <= time.Hour:
		return models.BookingConfirmed
	default:
		return models.BookingPending
	}
}
