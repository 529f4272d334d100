package domain

import "time"

type UserRole string

const (
	RoleAdmin        UserRole = "Admin"
	RoleSalesManager UserRole = "Sales Manager"
	RoleSalesRep     UserRole = "Sales Rep"
)

// IsManagement reports whether the role sees the whole organisation.
func (r UserRole) IsManagement() bool {
	return r == RoleAdmin || r == RoleSalesManager
}

// User is persisted as JSON, so the password hash carries a tag; handlers
// must never return the struct directly, only a view with the hash stripped.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Role         UserRole  `json:"role" validate:"required"`
	PasswordHash string    `json:"password_hash,omitempty"`
	LastActivity time.Time `json:"last_activity"`
}

// View is the API-safe projection of a User.
type UserView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	LastActivity time.Time `json:"last_activity"`
}

func (u *User) View() UserView {
	return UserView{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		LastActivity: u.LastActivity,
	}
}
