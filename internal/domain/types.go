package domain

import "strings"

// Role of an authenticated caller.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// ParseRole normalizes a role string; unknown values yield "".
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleStaff:
		return RoleStaff
	case RoleCustomer:
		return RoleCustomer
	default:
		return ""
	}
}

// Caller carries authenticated user info when available.
type Caller struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// Privileged callers see every booking.
func (c Caller) Privileged() bool {
	return c.Role == RoleAdmin || c.Role == RoleStaff
}

func (c Caller) Authenticated() bool {
	return c.Role != ""
}
