package domain

import (
	"strings"
	"time"
)

// Role is the permission class attached to a user.
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
	RoleCook    Role = "cook"
	RoleAdmin   Role = "admin"
)

// ParseRole validates s against the closed set of roles. An empty string
// resolves to RoleStudent, the default for self-registration.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case "":
		return RoleStudent, nil
	case RoleStudent, RoleOwner, RoleCook, RoleAdmin:
		return r, nil
	default:
		return "", Invalid("role must be one of: student, owner, cook, admin")
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleOwner, RoleCook, RoleAdmin:
		return true
	}
	return false
}

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the authenticated principal carried by a verified token.
type Identity struct {
	UserID string
	Role   Role
}

// NormalizeEmail trims and lowercases an address so lookups and the unique
// index agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
