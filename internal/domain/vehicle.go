package domain

import "time"

type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "Available"
	VehicleSold      VehicleStatus = "Sold"
	VehicleReserved  VehicleStatus = "Reserved"
)

type Vehicle struct {
	ID        int64         `json:"id"`
	Make      string        `json:"make" validate:"required"`
	Model     string        `json:"model" validate:"required"`
	Year      int           `json:"year"`
	Color     string        `json:"color,omitempty"`
	VIN       string        `json:"vin,omitempty"`
	Stock     string        `json:"stock,omitempty"`
	Price     float64       `json:"price"`
	Cost      *float64      `json:"cost"`
	Status    VehicleStatus `json:"status"`
	Features  string        `json:"features,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
