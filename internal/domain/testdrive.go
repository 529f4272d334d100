package domain

import "time"

type TestDriveStatus string

const (
	DriveScheduled TestDriveStatus = "Scheduled"
	DriveCompleted TestDriveStatus = "Completed"
	DriveCancelled TestDriveStatus = "Cancelled"
)

type TestDrive struct {
	ID         int64           `json:"id"`
	LeadID     int64           `json:"lead_id" validate:"required"`
	Vehicle    string          `json:"vehicle"`
	Datetime   time.Time       `json:"datetime"`
	SalesRepID int64           `json:"sales_rep_id"`
	Status     TestDriveStatus `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
