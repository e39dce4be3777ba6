package domain

import "fmt"

// Role of the caller as asserted by the upstream gateway
type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// ParseRole converts a raw header value to Role; empty means client
func ParseRole(s string) (Role, error) {
	switch role := Role(s); role {
	case "":
		return RoleClient, nil
	case RoleClient, RoleStaff, RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
}

// Principal is the authenticated caller. Staff ids share the user id space.
type Principal struct {
	UserID int64
	Role   Role
}

// IsClient returns true for the client role
func (p Principal) IsClient() bool {
	return p.Role == RoleClient
}

// IsStaffOrAdmin returns true for staff and admin roles
func (p Principal) IsStaffOrAdmin() bool {
	return p.Role == RoleStaff || p.Role == RoleAdmin
}

// IsAdmin returns true for the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
