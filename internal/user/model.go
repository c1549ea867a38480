package user

import (
	"net/http"
	"time"

	"github.com/resortwale/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
)

// Role distinguishes platform staff accounts.
type Role string

const (
	RoleAdmin Role = "admin" // platform administrators
	RoleOwner Role = "owner" // resort owners
)

// ValidRole reports whether r is a known staff role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleOwner
}

// User represents a staff account (platform admin or resort owner).
// Guests book without accounts.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
