package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of privileges an administrator can hold.
type Role string

const (
	RoleAdmin Role = "ADMIN_ROLE"
)

var ErrUnknownRole = errors.New("unknown role")

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Admin is the only privileged identity allowed to manage enterprises.
type Admin struct {
	ID           string    `json:"uid"`
	Name         string    `json:"name"  validate:"required,max=25"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"     validate:"required"`
	Phone        string    `json:"phone" validate:"required,len=8"`
	Role         Role      `json:"role"  validate:"required"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasRole reports whether the admin holds any of the given roles.
func (a *Admin) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
