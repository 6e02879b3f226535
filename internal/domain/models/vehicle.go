package models

import "time"

// Vehicle holds fleet vehicle master data.
type Vehicle struct {
	ID          int64     `json:"id"`
	VehicleCode string    `json:"vehicle_code"`
	PlateNumber string    `json:"plate_number"`
	Model       string    `json:"model,omitempty"`
	Capacity    int       `json:"capacity,omitempty"`
	Status      string    `json:"status"` // available / on_trip / maintenance
	CreatedAt   time.Time `json:"created_at"`
}
