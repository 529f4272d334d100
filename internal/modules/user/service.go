package user

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/pkg/names"
	"dealercrm/internal/pkg/validator"
	"dealercrm/internal/store"
)

// DefaultPassword is assigned when an admin creates a user without one.
const DefaultPassword = "password123"

var (
	ErrValidation     = errors.New("required user fields missing")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotConfirmed   = errors.New("delete not confirmed")
)

type SaveRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"`
}

type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

func (s *Service) List() ([]domain.UserView, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	views := make([]domain.UserView, 0, len(s.store.Users))
	for i := range s.store.Users {
		views = append(views, s.store.Users[i].View())
	}
	return views, nil
}

// SalesReps lists only rep-role users, for assignment dropdowns.
func (s *Service) SalesReps() ([]domain.UserView, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	var views []domain.UserView
	for i := range s.store.Users {
		if s.store.Users[i].Role == domain.RoleSalesRep {
			views = append(views, s.store.Users[i].View())
		}
	}
	return views, nil
}

func validRole(role domain.UserRole) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleSalesManager, domain.RoleSalesRep:
		return true
	}
	return false
}

func (s *Service) emailTaken(email string, excludeID int64) bool {
	for i := range s.store.Users {
		u := &s.store.Users[i]
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s *Service) Create(req *SaveRequest) (*domain.UserView, error) {
	role := domain.UserRole(req.Role)
	if req.Name == "" || req.Email == "" || !validRole(role) {
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	if s.emailTaken(req.Email, 0) {
		return nil, ErrDuplicateEmail
	}

	password := req.Password
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := domain.User{
		ID:           s.store.NextUserID(),
		Name:         names.Normalize(req.Name),
		Email:        strings.ToLower(req.Email),
		Role:         role,
		PasswordHash: string(hash),
		LastActivity: s.store.Now(),
	}
	if fields := validator.Validate(u); fields != nil {
		return nil, ErrValidation
	}
	s.store.Users = append(s.store.Users, u)
	if err := s.store.FlushUsers(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyUsers, "User saved successfully")
	view := u.View()
	return &view, nil
}

func (s *Service) Update(id int64, req *SaveRequest) (*domain.UserView, error) {
	role := domain.UserRole(req.Role)
	if req.Name == "" || req.Email == "" || !validRole(role) {
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	u := s.store.UserByID(id)
	if u == nil {
		return nil, nil
	}
	if s.emailTaken(req.Email, id) {
		return nil, ErrDuplicateEmail
	}

	u.Name = names.Normalize(req.Name)
	u.Email = strings.ToLower(req.Email)
	u.Role = role
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.store.FlushUsers(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyUsers, "User saved successfully")
	view := u.View()
	return &view, nil
}

// CleanNames runs the name normalizer over every stored user, persisting only
// when something changed. Runs once at startup alongside the lead sweep.
func (s *Service) CleanNames() error {
	if err := s.store.Reload(); err != nil {
		return err
	}

	changed := false
	for i := range s.store.Users {
		cleaned := names.Normalize(s.store.Users[i].Name)
		if cleaned != s.store.Users[i].Name {
			s.store.Users[i].Name = cleaned
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.store.FlushUsers()
}

func (s *Service) Delete(id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, ErrNotConfirmed
	}
	if err := s.store.Reload(); err != nil {
		return false, err
	}

	kept := s.store.Users[:0]
	found := false
	for _, u := range s.store.Users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return false, nil
	}
	s.store.Users = kept

	if err := s.store.FlushUsers(); err != nil {
		return false, err
	}

	events.Success(s.notify, store.KeyUsers, "User deleted successfully")
	return true, nil
}
