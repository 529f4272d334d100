package report

import (
	"sort"
	"strings"
	"time"

	"dealercrm/internal/domain"
)

// Alerts is the rep dashboard warning widget.
type Alerts struct {
	UncontactedLeads []UncontactedLead  `json:"uncontacted_leads"`
	OverdueTasks     []domain.Task      `json:"overdue_tasks"`
	TodayTestDrives  []domain.TestDrive `json:"today_test_drives"`
	PaymentFollowups []domain.Lead      `json:"payment_followups"`
}

type UncontactedLead struct {
	Lead             domain.Lead `json:"lead"`
	LastContact      time.Time   `json:"last_contact"`
	DaysSinceContact int         `json:"days_since_contact"`
}

const contactStaleness = 3 * 24 * time.Hour

func lastCommunication(comms []domain.Communication, leadID int64) *domain.Communication {
	var last *domain.Communication
	for i := range comms {
		if comms[i].LeadID != leadID {
			continue
		}
		if last == nil || comms[i].CreatedAt.After(last.CreatedAt) {
			last = &comms[i]
		}
	}
	return last
}

// UncontactedLeads lists open leads without a communication in the last three
// days, most stale first.
func UncontactedLeads(leads []domain.Lead, comms []domain.Communication, now time.Time) []UncontactedLead {
	cutoff := now.Add(-contactStaleness)

	var out []UncontactedLead
	for _, l := range leads {
		if l.Status.Terminal() {
			continue
		}
		lastContact := l.CreatedAt
		if last := lastCommunication(comms, l.ID); last != nil {
			lastContact = last.CreatedAt
		}
		if !lastContact.Before(cutoff) {
			continue
		}
		out = append(out, UncontactedLead{
			Lead:             l,
			LastContact:      lastContact,
			DaysSinceContact: int(now.Sub(lastContact).Hours() / 24),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LastContact.Before(out[j].LastContact) })
	return out
}

// OverdueTasks lists pending tasks past their due date, earliest due first.
func OverdueTasks(tasks []domain.Task, now time.Time) []domain.Task {
	var out []domain.Task
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			continue
		}
		if t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}

// TodayTestDrives lists test drives scheduled for the current calendar day.
func TodayTestDrives(drives []domain.TestDrive, now time.Time) []domain.TestDrive {
	y, m, d := now.Date()
	var out []domain.TestDrive
	for _, td := range drives {
		if td.Status != domain.DriveScheduled {
			continue
		}
		ty, tm, tdY := td.Datetime.Date()
		if ty == y && tm == m && tdY == d {
			out = append(out, td)
		}
	}
	return out
}

// paymentKeywords drive the follow-up scan. This is a known fragile
// heuristic: it matches free-text notes, not a structured field.
var paymentKeywords = []string{"payment", "deposit", "financing"}

func mentionsPayment(notes string) bool {
	lower := strings.ToLower(notes)
	for _, kw := range paymentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// PaymentFollowups flags Proposal/Negotiation leads with a value whose last
// payment-related communication is more than three days old (or absent).
func PaymentFollowups(leads []domain.Lead, comms []domain.Communication, now time.Time) []domain.Lead {
	var out []domain.Lead
	for _, l := range leads {
		if l.Status != domain.StatusProposal && l.Status != domain.StatusNegotiation {
			continue
		}
		if l.Value == nil {
			continue
		}

		var lastPayment *domain.Communication
		for i := range comms {
			if comms[i].LeadID != l.ID || !mentionsPayment(comms[i].Notes) {
				continue
			}
			if lastPayment == nil || comms[i].CreatedAt.After(lastPayment.CreatedAt) {
				lastPayment = &comms[i]
			}
		}

		if lastPayment == nil || now.Sub(lastPayment.CreatedAt) > contactStaleness {
			out = append(out, l)
		}
	}
	return out
}

// BuildAlerts assembles the widget from pre-scoped collections.
func BuildAlerts(leads []domain.Lead, tasks []domain.Task, comms []domain.Communication, drives []domain.TestDrive, now time.Time) Alerts {
	return Alerts{
		UncontactedLeads: UncontactedLeads(leads, comms, now),
		OverdueTasks:     OverdueTasks(tasks, now),
		TodayTestDrives:  TodayTestDrives(drives, now),
		PaymentFollowups: PaymentFollowups(leads, comms, now),
	}
}
