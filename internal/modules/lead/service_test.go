package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealercrm/internal/domain"
	"dealercrm/internal/store"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

var frozen = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryAdapter())
	st.Now = func() time.Time { return frozen }
	st.Users = []domain.User{{ID: 1, Name: "Admin", Role: domain.RoleAdmin}}
	require.NoError(t, st.FlushUsers())
	return NewService(st, nil), st
}

func validRequest() *SaveLeadRequest {
	return &SaveLeadRequest{
		Name:   "John Smith",
		Email:  "john@example.com",
		Phone:  "+254 700 000 000",
		Source: "website",
		Status: "New",
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	second, err := svc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateNormalizesName(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.Name = "J. John Smith"
	l, err := svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", l.Name)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.Phone = ""
	_, err := svc.Create(req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.Status = "Bogus"
	_, err := svc.Create(req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBackfillsValueFromVehicle(t *testing.T) {
	svc, st := newTestService(t)
	st.Vehicles = []domain.Vehicle{{ID: 7, Make: "Toyota", Model: "Prado", Price: 8500000}}
	require.NoError(t, st.FlushVehicles())

	req := validRequest()
	req.VehicleID = ptrI(7)
	l, err := svc.Create(req)
	require.NoError(t, err)
	require.NotNil(t, l.Value)
	assert.Equal(t, 8500000.0, *l.Value)
}

func TestCreateExplicitValueWinsOverVehiclePrice(t *testing.T) {
	svc, st := newTestService(t)
	st.Vehicles = []domain.Vehicle{{ID: 7, Price: 8500000}}
	require.NoError(t, st.FlushVehicles())

	req := validRequest()
	req.VehicleID = ptrI(7)
	req.Value = ptrF(8000000)
	l, err := svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, 8000000.0, *l.Value)
}

func TestCreateVehicleIDClearsFreeTextInterest(t *testing.T) {
	svc, st := newTestService(t)
	st.Vehicles = []domain.Vehicle{{ID: 7, Price: 100}}
	require.NoError(t, st.FlushVehicles())

	req := validRequest()
	req.VehicleID = ptrI(7)
	req.VehicleInterest = "some SUV"
	l, err := svc.Create(req)
	require.NoError(t, err)
	assert.Empty(t, l.VehicleInterest)
}

func TestCreateTradeInDefaultsToNo(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, "no", l.TradeIn)

	req := validRequest()
	req.TradeIn = "yes"
	l, err = svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, "yes", l.TradeIn)
}

func TestUpdateMissingLeadIsSilentNoOp(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.Update(99, validRequest())
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(validRequest())
	require.NoError(t, err)

	_, err = svc.Delete(1, false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestDeleteCascadesTasksAndCommunications(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.Create(validRequest())
	require.NoError(t, err)
	_, err = svc.Create(validRequest())
	require.NoError(t, err)

	st.Tasks = []domain.Task{
		{ID: 1, LeadID: 1, Title: "call"},
		{ID: 2, LeadID: 2, Title: "keep me"},
	}
	st.Communications = []domain.Communication{
		{ID: 1, LeadID: 1, Notes: "gone"},
		{ID: 2, LeadID: 2, Notes: "kept"},
	}
	require.NoError(t, st.FlushTasks())
	require.NoError(t, st.FlushCommunications())

	deleted, err := svc.Delete(1, true)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, st.Reload())
	require.Len(t, st.Leads, 1)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, int64(2), st.Tasks[0].ID)
	require.Len(t, st.Communications, 1)
	assert.Equal(t, int64(2), st.Communications[0].ID)
}

func TestReassignAppendsHistory(t *testing.T) {
	svc, st := newTestService(t)
	st.Users = append(st.Users,
		domain.User{ID: 2, Name: "Walter White", Role: domain.RoleSalesRep},
		domain.User{ID: 3, Name: "Jesse Pinkman", Role: domain.RoleSalesRep},
	)
	require.NoError(t, st.FlushUsers())

	req := validRequest()
	req.AssignedTo = ptrI(2)
	_, err := svc.Create(req)
	require.NoError(t, err)

	l, err := svc.Reassign(1, 3, 1, "territory change")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *l.AssignedTo)
	require.Len(t, l.ReassignmentHistory, 1)

	entry := l.ReassignmentHistory[0]
	assert.Equal(t, int64(2), *entry.FromUserID)
	assert.Equal(t, int64(3), entry.ToUserID)
	assert.Equal(t, int64(1), *entry.ReassignedBy)
	assert.Equal(t, "territory change", entry.Reason)
}

func TestReassignToCurrentOwnerRejected(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRequest()
	req.AssignedTo = ptrI(2)
	_, err := svc.Create(req)
	require.NoError(t, err)

	_, err = svc.Reassign(1, 2, 1, "")
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestSetDocumentRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(validRequest())
	require.NoError(t, err)

	l, err := svc.SetDocument(1, "logbook", true, 1)
	require.NoError(t, err)
	state := l.Documents["logbook"]
	assert.True(t, state.Uploaded)
	require.NotNil(t, state.CompletedAt)
	assert.Equal(t, frozen, *state.CompletedAt)
	assert.Equal(t, int64(1), *state.CompletedBy)

	l, err = svc.SetDocument(1, "logbook", false, 1)
	require.NoError(t, err)
	state = l.Documents["logbook"]
	assert.False(t, state.Uploaded)
	assert.Nil(t, state.CompletedAt)
}

func TestSetDocumentUnknownKey(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(validRequest())
	require.NoError(t, err)

	_, err = svc.SetDocument(1, "passport", true, 1)
	assert.ErrorIs(t, err, ErrUnknownDocument)
}

func TestDetailSortsNewestFirst(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.Create(validRequest())
	require.NoError(t, err)

	st.Communications = []domain.Communication{
		{ID: 1, LeadID: 1, Notes: "older", CreatedAt: frozen.AddDate(0, 0, -5)},
		{ID: 2, LeadID: 1, Notes: "newer", CreatedAt: frozen.AddDate(0, 0, -1)},
	}
	require.NoError(t, st.FlushCommunications())

	d, err := svc.Detail(1)
	require.NoError(t, err)
	require.Len(t, d.Communications, 2)
	assert.Equal(t, int64(2), d.Communications[0].ID)
	assert.Equal(t, len(domain.DocumentKeys), d.DocumentsTotal)
}

func TestCleanNamesSweepsStoredLeads(t *testing.T) {
	svc, st := newTestService(t)
	st.Leads = []domain.Lead{
		{ID: 1, Name: "●J John Smith", Status: domain.StatusNew},
		{ID: 2, Name: "Mary Wanjiku", Status: domain.StatusNew},
	}
	require.NoError(t, st.FlushLeads())

	require.NoError(t, svc.CleanNames())

	require.NoError(t, st.Reload())
	assert.Equal(t, "John Smith", st.Leads[0].Name)
	assert.Equal(t, "Mary Wanjiku", st.Leads[1].Name)
}
