package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealercrm/internal/domain"
)

var alertNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return alertNow.AddDate(0, 0, -d) }

func TestUncontactedLeadsStalestFirst(t *testing.T) {
	leads := []domain.Lead{
		{ID: 1, Status: domain.StatusNew, CreatedAt: daysAgo(10)},
		{ID: 2, Status: domain.StatusNew, CreatedAt: daysAgo(5)},
		{ID: 3, Status: domain.StatusNew, CreatedAt: daysAgo(1)}, // fresh enough
		{ID: 4, Status: domain.StatusWon, CreatedAt: daysAgo(30)},
	}

	out := UncontactedLeads(leads, nil, alertNow)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].Lead.ID)
	assert.Equal(t, 10, out[0].DaysSinceContact)
	assert.Equal(t, int64(2), out[1].Lead.ID)
}

func TestUncontactedLeadsRecentCommResets(t *testing.T) {
	leads := []domain.Lead{{ID: 1, Status: domain.StatusNew, CreatedAt: daysAgo(10)}}
	comms := []domain.Communication{{ID: 1, LeadID: 1, CreatedAt: daysAgo(1)}}

	assert.Empty(t, UncontactedLeads(leads, comms, alertNow))
}

func TestOverdueTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Status: domain.TaskPending, DueDate: daysAgo(2)},
		{ID: 2, Status: domain.TaskPending, DueDate: daysAgo(5)},
		{ID: 3, Status: domain.TaskCompleted, DueDate: daysAgo(5)},
		{ID: 4, Status: domain.TaskPending, DueDate: alertNow.AddDate(0, 0, 1)},
	}

	out := OverdueTasks(tasks, alertNow)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID) // earliest due first
	assert.Equal(t, int64(1), out[1].ID)
}

func TestTodayTestDrives(t *testing.T) {
	today := time.Date(2024, 3, 15, 16, 30, 0, 0, time.UTC)
	drives := []domain.TestDrive{
		{ID: 1, Status: domain.DriveScheduled, Datetime: today},
		{ID: 2, Status: domain.DriveScheduled, Datetime: today.AddDate(0, 0, 1)},
		{ID: 3, Status: domain.DriveCancelled, Datetime: today},
	}

	out := TodayTestDrives(drives, alertNow)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestPaymentFollowups(t *testing.T) {
	value := 500000.0
	leads := []domain.Lead{
		{ID: 1, Status: domain.StatusProposal, Value: &value},    // no payment comm at all
		{ID: 2, Status: domain.StatusNegotiation, Value: &value}, // stale payment comm
		{ID: 3, Status: domain.StatusNegotiation, Value: &value}, // recent payment comm
		{ID: 4, Status: domain.StatusProposal},                   // no value, skipped
		{ID: 5, Status: domain.StatusNew, Value: &value},         // wrong stage
	}
	comms := []domain.Communication{
		{ID: 1, LeadID: 2, Notes: "Waiting on deposit confirmation", CreatedAt: daysAgo(6)},
		{ID: 2, LeadID: 3, Notes: "Discussed financing schedule", CreatedAt: daysAgo(1)},
		{ID: 3, LeadID: 3, Notes: "General chat", CreatedAt: daysAgo(10)},
	}

	out := PaymentFollowups(leads, comms, alertNow)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(2), out[1].ID)
}

func TestMentionsPaymentIsCaseInsensitive(t *testing.T) {
	assert.True(t, mentionsPayment("FINAL PAYMENT due"))
	assert.True(t, mentionsPayment("left a Deposit"))
	assert.False(t, mentionsPayment("asked about color options"))
}
