package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/store"
)

type capturedEvents struct {
	events []events.Event
}

func (c *capturedEvents) Publish(e events.Event) { c.events = append(c.events, e) }

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

var frozen = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T, leads []domain.Lead, users []domain.User) (*Service, *store.Store, *capturedEvents) {
	t.Helper()
	st := store.New(store.NewMemoryAdapter())
	st.Now = func() time.Time { return frozen }
	st.Leads = leads
	st.Users = users
	require.NoError(t, st.FlushLeads())
	require.NoError(t, st.FlushUsers())

	sink := &capturedEvents{}
	return NewService(st, sink), st, sink
}

func adminOnly() []domain.User {
	return []domain.User{{ID: 1, Role: domain.RoleAdmin}}
}

func TestTransitionToWonStampsCloseDate(t *testing.T) {
	svc, st, _ := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusNegotiation, Value: ptrF(5000000)},
	}, adminOnly())

	l, moved, err := svc.Transition(1, domain.StatusWon)
	require.NoError(t, err)
	assert.True(t, moved)
	require.NotNil(t, l.CloseDate)
	assert.Equal(t, frozen, *l.CloseDate)

	// Persisted too.
	require.NoError(t, st.Reload())
	assert.NotNil(t, st.Leads[0].CloseDate)
}

func TestTransitionToWonKeepsExistingCloseDate(t *testing.T) {
	earlier := frozen.AddDate(0, 0, -10)
	svc, _, _ := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusLost, CloseDate: &earlier},
	}, adminOnly())

	l, moved, err := svc.Transition(1, domain.StatusWon)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, earlier, *l.CloseDate)
}

func TestTransitionLeavingWonKeepsCloseDate(t *testing.T) {
	closed := frozen.AddDate(0, 0, -5)
	svc, _, _ := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusWon, CloseDate: &closed},
	}, adminOnly())

	l, moved, err := svc.Transition(1, domain.StatusNegotiation)
	require.NoError(t, err)
	assert.True(t, moved)
	require.NotNil(t, l.CloseDate)
	assert.Equal(t, closed, *l.CloseDate)
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	svc, _, sink := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusNew},
	}, adminOnly())

	_, moved, err := svc.Transition(1, domain.StatusNew)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, sink.events)
}

func TestTransitionUnknownLeadDroppedSilently(t *testing.T) {
	svc, _, sink := newService(t, nil, adminOnly())

	l, moved, err := svc.Transition(99, domain.StatusWon)
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.False(t, moved)
	assert.Empty(t, sink.events)
}

func TestTransitionUnknownStageDroppedSilently(t *testing.T) {
	svc, st, _ := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusNew},
	}, adminOnly())

	_, moved, err := svc.Transition(1, domain.LeadStatus("Bogus"))
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, st.Reload())
	assert.Equal(t, domain.StatusNew, st.Leads[0].Status)
}

func TestTransitionWonToastIncludesRevenue(t *testing.T) {
	svc, _, sink := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusNegotiation, Value: ptrF(4200000)},
	}, adminOnly())

	_, _, err := svc.Transition(1, domain.StatusWon)
	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	assert.Contains(t, sink.events[0].Message, "Revenue: 4200000")
}

func TestBuildBoardStageMembership(t *testing.T) {
	svc, _, _ := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusNew, CreatedAt: frozen.AddDate(0, 0, -4)},
		{ID: 2, Status: domain.StatusNew, CreatedAt: frozen.AddDate(0, 0, -2)},
		{ID: 3, Status: domain.StatusWon, CreatedAt: frozen.AddDate(0, 0, -30)},
	}, adminOnly())

	board, err := svc.BuildBoard(1)
	require.NoError(t, err)
	require.Len(t, board.Stages, len(domain.PipelineStages))

	assert.Equal(t, domain.StatusNew, board.Stages[0].Stage)
	assert.Equal(t, 2, board.Stages[0].Count)

	// 1 of 3 won -> 33%.
	assert.Equal(t, 33, board.ConversionRate)
	// Active leads are 4 and 2 days old.
	assert.Equal(t, 3, board.AvgPipelineAge)
}

func TestBuildBoardEmpty(t *testing.T) {
	svc, _, _ := newService(t, nil, adminOnly())

	board, err := svc.BuildBoard(1)
	require.NoError(t, err)
	assert.Equal(t, 0, board.ConversionRate)
	assert.Equal(t, 0, board.AvgPipelineAge)
	for _, col := range board.Stages {
		assert.Zero(t, col.Count)
	}
}

func TestBuildBoardScopedToRep(t *testing.T) {
	users := []domain.User{
		{ID: 1, Role: domain.RoleAdmin},
		{ID: 2, Role: domain.RoleSalesRep},
	}
	svc, _, _ := newService(t, []domain.Lead{
		{ID: 1, Status: domain.StatusNew, AssignedTo: ptrI(2), CreatedAt: frozen},
		{ID: 2, Status: domain.StatusNew, AssignedTo: ptrI(3), CreatedAt: frozen},
	}, users)

	board, err := svc.BuildBoard(2)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Stages[0].Count)
}

func TestParseDragPayloadPlainText(t *testing.T) {
	id, ok := ParseDragPayload("42", "")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	id, ok = ParseDragPayload(" 7 ", "")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestParseDragPayloadJSONFallback(t *testing.T) {
	id, ok := ParseDragPayload("", `{"leadId": 13}`)
	assert.True(t, ok)
	assert.Equal(t, int64(13), id)
}

func TestParseDragPayloadTextWinsOverJSON(t *testing.T) {
	id, ok := ParseDragPayload("5", `{"leadId": 9}`)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestParseDragPayloadGarbage(t *testing.T) {
	_, ok := ParseDragPayload("not-a-number", "also not json")
	assert.False(t, ok)

	_, ok = ParseDragPayload("", `{"somethingElse": 1}`)
	assert.False(t, ok)

	_, ok = ParseDragPayload("0", "")
	assert.False(t, ok)
}
