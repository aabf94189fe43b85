// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including moderation and the trash view
	RoleAdmin UserRole = "admin"

	// Can create and manage their own activity listings
	RoleOrganizer UserRole = "organizer"

	// Default role for standard registered users (browse only)
	RoleUser UserRole = "user"
)

// IsValid reports whether r is a recognised [UserRole] value.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleOrganizer:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
