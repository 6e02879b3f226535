package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a billing document issued for a booking.
type Invoice struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	BookingID     int64           `json:"booking_id"`
	ClientID      int64           `json:"client_id"`
	Amount        decimal.Decimal `json:"amount"`
	IssuedAt      time.Time       `json:"issued_at"`
	CreatedAt     time.Time       `json:"created_at"`
}
