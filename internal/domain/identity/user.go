package identity

import (
	"github.com/erp/procurement/internal/domain/shared"
)

// Role represents the authorization role of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User represents an account that raises requests and grants approvals.
// Only users with the admin role may approve purchase or delivery orders.
type User struct {
	shared.BaseEntity
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with the given credentials
func NewUser(email, passwordHash string, role Role) (*User, error) {
	if email == "" {
		return nil, shared.NewValidationError("Email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Role must be admin or user")
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// IsAdmin returns true if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ChangeRole updates the user role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewValidationError("Role must be admin or user")
	}
	u.Role = role
	u.Touch()
	return nil
}
