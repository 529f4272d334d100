package domain

import "time"

// LeadStatus is a pipeline stage. The order of PipelineStages is the order
// leads move through the board; Won and Lost are conventionally terminal but
// no transition is rejected.
type LeadStatus string

const (
	StatusNew         LeadStatus = "New"
	StatusContacted   LeadStatus = "Contacted"
	StatusQualified   LeadStatus = "Qualified"
	StatusProposal    LeadStatus = "Proposal"
	StatusNegotiation LeadStatus = "Negotiation"
	StatusWon         LeadStatus = "Won"
	StatusLost        LeadStatus = "Lost"
)

// PipelineStages lists every stage in board order.
var PipelineStages = []LeadStatus{
	StatusNew, StatusContacted, StatusQualified,
	StatusProposal, StatusNegotiation, StatusWon, StatusLost,
}

// ActiveStages are the stages that count as an open deal.
var ActiveStages = []LeadStatus{
	StatusNew, StatusContacted, StatusQualified, StatusProposal, StatusNegotiation,
}

func (s LeadStatus) Valid() bool {
	for _, st := range PipelineStages {
		if s == st {
			return true
		}
	}
	return false
}

func (s LeadStatus) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

type LeadSource string

const (
	SourceWebsite     LeadSource = "website"
	SourceReferral    LeadSource = "referral"
	SourceWalkIn      LeadSource = "walk-in"
	SourcePhone       LeadSource = "phone"
	SourceSocialMedia LeadSource = "social-media"
)

// DocumentKeys are the fixed checklist entries collected per deal.
var DocumentKeys = []string{
	"id", "kra", "residence", "bankStatements", "employment", "logbook", "insurance",
}

// DocumentState tracks one checklist entry on a lead.
type DocumentState struct {
	Uploaded    bool       `json:"uploaded"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy *int64     `json:"completed_by,omitempty"`
}

// Reassignment is one entry of the append-only reassignment log.
type Reassignment struct {
	FromUserID   *int64    `json:"from_user_id"`
	ToUserID     int64     `json:"to_user_id"`
	ReassignedBy *int64    `json:"reassigned_by"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
}

type Lead struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Phone    string     `json:"phone" validate:"required"`
	Company  string     `json:"company,omitempty"`
	JobTitle string     `json:"job_title,omitempty"`
	Source   LeadSource `json:"source" validate:"required"`
	Status   LeadStatus `json:"status" validate:"required"`

	AssignedTo *int64     `json:"assigned_to"`
	Value      *float64   `json:"value"`
	CloseDate  *time.Time `json:"close_date"`

	// VehicleID and VehicleInterest are mutually exclusive: a concrete stock
	// unit wins over the free-text interest.
	VehicleID       *int64 `json:"vehicle_id"`
	VehicleInterest string `json:"vehicle_interest,omitempty"`

	TradeIn  string `json:"trade_in"` // "yes" or "no"
	Timeline string `json:"timeline,omitempty"`
	Notes    string `json:"notes,omitempty"`

	Documents           map[string]DocumentState `json:"documents,omitempty"`
	ReassignmentHistory []Reassignment           `json:"reassignment_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentsCollected counts checklist entries marked uploaded.
func (l *Lead) DocumentsCollected() int {
	n := 0
	for _, key := range DocumentKeys {
		if d, ok := l.Documents[key]; ok && d.Uploaded {
			n++
		}
	}
	return n
}
