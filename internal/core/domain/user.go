package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of access tiers an account can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrTooManyAttempts = errors.New("too many failed login attempts")
var ErrExternalUnavailable = errors.New("external service unavailable")

// ParseRole converts a raw string into a Role, rejecting anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Satisfies reports whether r grants access to a resource that requires the
// given tier. admin satisfies every tier; user satisfies only the user tier.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// User models a provisioned account. Accounts are created at seed time and
// are read-only as far as the authentication core is concerned.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity resolved for a request after the
// token has been verified.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
