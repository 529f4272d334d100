package lead

import (
	"time"

	"dealercrm/internal/domain"
)

// SaveLeadRequest covers both create and update; update keeps fields the
// request leaves at their zero value only for the optional ones.
type SaveLeadRequest struct {
	Name            string     `json:"name" binding:"required"`
	Email           string     `json:"email" binding:"required,email"`
	Phone           string     `json:"phone" binding:"required"`
	Company         string     `json:"company"`
	JobTitle        string     `json:"job_title"`
	Source          string     `json:"source" binding:"required"`
	Status          string     `json:"status" binding:"required"`
	AssignedTo      *int64     `json:"assigned_to"`
	Value           *float64   `json:"value"`
	CloseDate       *time.Time `json:"close_date"`
	VehicleID       *int64     `json:"vehicle_id"`
	VehicleInterest string     `json:"vehicle_interest"`
	TradeIn         string     `json:"trade_in"`
	Timeline        string     `json:"timeline"`
	Notes           string     `json:"notes"`
}

type ReassignRequest struct {
	ToUserID int64  `json:"to_user_id" binding:"required"`
	Reason   string `json:"reason"`
}

type DocumentRequest struct {
	Uploaded bool `json:"uploaded"`
}

// Detail is the lead side panel: the lead plus everything hanging off it.
type Detail struct {
	Lead               domain.Lead            `json:"lead"`
	Communications     []domain.Communication `json:"communications"`
	TestDrives         []domain.TestDrive     `json:"test_drives"`
	DocumentsCollected int                    `json:"documents_collected"`
	DocumentsTotal     int                    `json:"documents_total"`
}
