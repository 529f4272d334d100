package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dealercrm/internal/domain"
	jwtsvc "dealercrm/internal/pkg/jwt"
	"dealercrm/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryAdapter())
	st.Now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	st.Users = []domain.User{
		{ID: 1, Name: "Admin User", Email: "admin@dealership.com", Role: domain.RoleSalesManager, PasswordHash: string(hash)},
		{ID: 2, Name: "Walter White", Email: "walter@dealership.com", Role: domain.RoleSalesRep, PasswordHash: string(hash)},
	}
	require.NoError(t, st.FlushUsers())

	return NewService(st, jwtsvc.New("test-secret", time.Hour)), st
}

func TestLoginHappyPath(t *testing.T) {
	svc, st := newTestService(t)

	res, err := svc.Login(&LoginRequest{Email: "admin@dealership.com", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(1), res.User.ID)

	// Logging in makes you the active user.
	require.NoError(t, st.Reload())
	assert.Equal(t, int64(1), st.CurrentUserID)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(&LoginRequest{Email: "Admin@Dealership.com", Password: "admin123"})
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(&LoginRequest{Email: "admin@dealership.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(&LoginRequest{Email: "ghost@dealership.com", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginResponseOmitsPasswordHash(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Login(&LoginRequest{Email: "walter@dealership.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "Walter White", res.User.Name)
	// UserView has no hash field at all; spot-check the role came through.
	assert.Equal(t, domain.RoleSalesRep, res.User.Role)
}

func TestSwitchChangesActiveUser(t *testing.T) {
	svc, st := newTestService(t)

	res, err := svc.Switch(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.User.ID)
	assert.NotEmpty(t, res.Token)

	require.NoError(t, st.Reload())
	assert.Equal(t, int64(2), st.CurrentUserID)
}

func TestSwitchUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Switch(99)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginTokenIsValid(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Login(&LoginRequest{Email: "walter@dealership.com", Password: "admin123"})
	require.NoError(t, err)

	claims, err := jwtsvc.New("test-secret", time.Hour).ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)
	assert.Equal(t, string(domain.RoleSalesRep), claims.Role)
}
