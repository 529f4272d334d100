package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealercrm/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := New(NewMemoryAdapter())
	st.Now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return st
}

func TestReloadEmptyAdapter(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Reload())
	assert.Empty(t, st.Leads)
	assert.Empty(t, st.Users)
}

func TestFlushThenReloadRoundTrip(t *testing.T) {
	st := newTestStore(t)
	st.Leads = []domain.Lead{{ID: 1, Name: "John Smith", Status: domain.StatusNew}}
	require.NoError(t, st.FlushLeads())

	st.Leads = nil
	require.NoError(t, st.Reload())
	require.Len(t, st.Leads, 1)
	assert.Equal(t, "John Smith", st.Leads[0].Name)
}

func TestNextIDIsMaxPlusOne(t *testing.T) {
	st := newTestStore(t)
	assert.Equal(t, int64(1), st.NextLeadID())

	st.Leads = []domain.Lead{{ID: 1}, {ID: 5}, {ID: 3}}
	assert.Equal(t, int64(6), st.NextLeadID())
}

// Deleting the max-id row hands the same id out again on the next insert.
func TestNextIDReusedAfterDeletingMax(t *testing.T) {
	st := newTestStore(t)
	st.Leads = []domain.Lead{{ID: 1}, {ID: 2}, {ID: 3}}

	st.Leads = st.Leads[:2]
	assert.Equal(t, int64(3), st.NextLeadID())
}

func TestCurrentUserFallsBackToAdmin(t *testing.T) {
	st := newTestStore(t)
	st.Users = []domain.User{
		{ID: 7, Role: domain.RoleSalesRep},
		{ID: 8, Role: domain.RoleAdmin},
	}
	st.CurrentUserID = 999

	u, ok := st.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, int64(8), u.ID)
}

func TestCurrentUserNoneAtAll(t *testing.T) {
	st := newTestStore(t)
	st.Users = []domain.User{{ID: 7, Role: domain.RoleSalesRep}}
	st.CurrentUserID = 999

	_, ok := st.CurrentUser()
	assert.False(t, ok)
}

func TestSetCurrentUserSurvivesReload(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SetCurrentUser(42))

	st.CurrentUserID = 0
	require.NoError(t, st.Reload())
	assert.Equal(t, int64(42), st.CurrentUserID)
}

func TestPasswordHashSurvivesPersistence(t *testing.T) {
	st := newTestStore(t)
	st.Users = []domain.User{{ID: 1, Name: "Rep", PasswordHash: "hashed"}}
	require.NoError(t, st.FlushUsers())

	st.Users = nil
	require.NoError(t, st.Reload())
	require.Len(t, st.Users, 1)
	assert.Equal(t, "hashed", st.Users[0].PasswordHash)
}
