package domain

import "time"

type CommType string

const (
	CommCall    CommType = "call"
	CommEmail   CommType = "email"
	CommMeeting CommType = "meeting"
	CommNote    CommType = "note"
	CommWalkIn  CommType = "walk-in"
)

type CommOutcome string

const (
	OutcomePositive CommOutcome = "positive"
	OutcomeNeutral  CommOutcome = "neutral"
	OutcomeNegative CommOutcome = "negative"
)

// Communication is an immutable activity log entry; there is no update path.
type Communication struct {
	ID        int64       `json:"id"`
	LeadID    int64       `json:"lead_id" validate:"required"`
	Type      CommType    `json:"type"`
	Subject   string      `json:"subject,omitempty"`
	Notes     string      `json:"notes" validate:"required"`
	Outcome   CommOutcome `json:"outcome"`
	CreatedAt time.Time   `json:"created_at"`
}
