package models

import "time"

// Driver holds fleet driver master data.
type Driver struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number,omitempty"`
	Status        string    `json:"status"` // active / inactive
	CreatedAt     time.Time `json:"created_at"`
}
