package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"dealercrm/internal/domain"
	"dealercrm/internal/pkg/jwt"
	"dealercrm/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  domain.UserView `json:"user"`
}

type SwitchRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

type Service struct {
	store *store.Store
	jwt   *jwt.Service
}

func NewService(st *store.Store, jwtSvc *jwt.Service) *Service {
	return &Service{store: st, jwt: jwtSvc}
}

func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	var user *domain.User
	for i := range s.store.Users {
		if strings.EqualFold(s.store.Users[i].Email, req.Email) {
			user = &s.store.Users[i]
			break
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.LastActivity = s.store.Now()
	if err := s.store.FlushUsers(); err != nil {
		return nil, err
	}
	// Logging in also makes you the active user for scoped views.
	if err := s.store.SetCurrentUser(user.ID); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user.View()}, nil
}

// Switch changes the active user without a fresh login. The demo UI uses it
// to flip between role perspectives; it issues a token for the target user.
func (s *Service) Switch(userID int64) (*LoginResponse, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	user := s.store.UserByID(userID)
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.store.SetCurrentUser(user.ID); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user.View()}, nil
}

// Me returns the profile behind a user id from validated claims.
func (s *Service) Me(userID int64) (*domain.UserView, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	user := s.store.UserByID(userID)
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	view := user.View()
	return &view, nil
}
