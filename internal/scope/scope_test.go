package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealercrm/internal/domain"
)

func ptr(v int64) *int64 { return &v }

var testUsers = []domain.User{
	{ID: 1, Name: "Admin", Role: domain.RoleAdmin},
	{ID: 2, Name: "Manager", Role: domain.RoleSalesManager},
	{ID: 3, Name: "Rep A", Role: domain.RoleSalesRep},
	{ID: 4, Name: "Rep B", Role: domain.RoleSalesRep},
}

var testLeads = []domain.Lead{
	{ID: 10, AssignedTo: ptr(3)},
	{ID: 11, AssignedTo: ptr(4)},
	{ID: 12, AssignedTo: nil},
}

func TestLeadsManagementSeesEverything(t *testing.T) {
	assert.Len(t, Leads(testLeads, testUsers, 1), 3)
	assert.Len(t, Leads(testLeads, testUsers, 2), 3)
}

func TestLeadsRepSeesOnlyOwn(t *testing.T) {
	got := Leads(testLeads, testUsers, 3)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].ID)
}

func TestLeadsUnassignedHiddenFromReps(t *testing.T) {
	for _, l := range Leads(testLeads, testUsers, 4) {
		assert.NotNil(t, l.AssignedTo)
	}
}

func TestLeadsUnknownUserFallsBackToAdmin(t *testing.T) {
	assert.Len(t, Leads(testLeads, testUsers, 999), 3)
}

func TestLeadsNoUsersAtAllStaysUnfiltered(t *testing.T) {
	assert.Len(t, Leads(testLeads, nil, 999), 3)
}

func TestTasksRepScope(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, AssignedTo: ptr(3), LeadID: 11},  // direct assignment wins
		{ID: 2, AssignedTo: ptr(4), LeadID: 10},  // someone else's
		{ID: 3, AssignedTo: nil, LeadID: 10},     // unassigned, rep's lead
		{ID: 4, AssignedTo: nil, LeadID: 11},     // unassigned, other lead
		{ID: 5, AssignedTo: nil, LeadID: 12},     // unassigned, ownerless lead
	}

	got := Tasks(tasks, testLeads, testUsers, 3)
	ids := make([]int64, 0, len(got))
	for _, tk := range got {
		ids = append(ids, tk.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestTasksManagementSeesEverything(t *testing.T) {
	tasks := []domain.Task{{ID: 1}, {ID: 2, AssignedTo: ptr(3)}}
	assert.Len(t, Tasks(tasks, testLeads, testUsers, 2), 2)
}

func TestCommunicationsFollowLeadScope(t *testing.T) {
	comms := []domain.Communication{
		{ID: 1, LeadID: 10},
		{ID: 2, LeadID: 11},
		{ID: 3, LeadID: 12},
	}

	got := Communications(comms, testLeads, testUsers, 3)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	assert.Len(t, Communications(comms, testLeads, testUsers, 1), 3)
}
