package services

import (
	"testing"
	"time"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func booking(status models.BookingStatus, pickup time.Time, fare string) models.Booking {
	return models.Booking{
		ID:       1,
		ClientID: 1,
		PickupAt: pickup,
		Fare:     decimal.RequireFromString(fare),
		Status:   status,
	}
}

func TestDeriveBookingStatus_CancellationDominates(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		pickup time.Time
		paid   string
	}{
		{"future pickup unpaid", now.Add(48 * time.Hour), "0"},
		{"past pickup unpaid", now.Add(-48 * time.Hour), "0"},
		{"fully paid", now.Add(2 * time.Hour), "100"},
		{"overpaid", now.Add(-2 * time.Hour), "500"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := booking(models.BookingCancelled, tc.pickup, "100")
			got := DeriveBookingStatus(b, decimal.RequireFromString(tc.paid), now)
			assert.Equal(t, models.BookingCancelled, got)
		})
	}
}

func TestDeriveBookingStatus_FullPaymentDominates(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Fully paid wins even when pickup is far in the future.
	b := booking(models.BookingPending, now.Add(72*time.Hour), "250")
	got := DeriveBookingStatus(b, decimal.RequireFromString("250"), now)
	assert.Equal(t, models.BookingCompleted, got)

	// Overpayment counts as fully paid too.
	got = DeriveBookingStatus(b, decimal.RequireFromString("300"), now)
	assert.Equal(t, models.BookingCompleted, got)
}

func TestDeriveBookingStatus_ZeroFareNeverCompletedByPayment(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	b := booking(models.BookingPending, now.Add(3*time.Hour), "0")
	got := DeriveBookingStatus(b, decimal.Zero, now)
	assert.Equal(t, models.BookingPending, got)

	// Even a positive paid total cannot complete a zero-fare booking.
	got = DeriveBookingStatus(b, decimal.RequireFromString("50"), now)
	assert.Equal(t, models.BookingPending, got)
}

func TestDeriveBookingStatus_TimeBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		pickup time.Time
		want   models.BookingStatus
	}{
		{"three hours ahead", now.Add(3 * time.Hour), models.BookingPending},
		{"thirty minutes ahead", now.Add(30 * time.Minute), models.BookingConfirmed},
		{"exactly one hour ahead", now.Add(time.Hour), models.BookingConfirmed},
		{"exactly now", now, models.BookingConfirmed},
		{"one hour ago", now.Add(-time.Hour), models.BookingInProgress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := booking(models.BookingPending, tc.pickup, "100")
			got := DeriveBookingStatus(b, decimal.Zero, now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeriveBookingStatus_PartialPaymentFollowsClock(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	b := booking(models.BookingPending, now.Add(-time.Hour), "100")
	got := DeriveBookingStatus(b, decimal.RequireFromString("60"), now)
	assert.Equal(t, models.BookingInProgress, got)
}
