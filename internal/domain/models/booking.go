package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the manually-set lifecycle field stored on a booking.
// The status shown to users is derived fresh on every read and is never
// written back to the row.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the stored lifecycle can no longer move.
// Cancellation is sticky; it overrides every derived signal.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled
}

// Booking represents one transport job for a client.
type Booking struct {
	ID        int64           `json:"id"`
	ClientID  int64           `json:"client_id"`
	VehicleID *int64          `json:"vehicle_id,omitempty"`
	DriverID  *int64          `json:"driver_id,omitempty"`
	RouteFrom string          `json:"route_from"`
	RouteTo   string          `json:"route_to"`
	PickupAt  time.Time       `json:"pickup_at"`
	Fare      decimal.Decimal `json:"fare"`
	Status    BookingStatus   `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// BookingUpdate supports PATCH-style updates via key presence.
type BookingUpdate struct {
	ClientID  *int64
	VehicleID *int64
	DriverID  *int64
	RouteFrom *string
	RouteTo   *string
	PickupAt  *time.Time
	Fare      *decimal.Decimal
	Notes     *string
}
