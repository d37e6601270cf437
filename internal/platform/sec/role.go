// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The catalog knows exactly two levels: visitors with an account, and the
// curatorial staff who may mutate rooms and artworks.
type UserRole string

const (
	// Unrestricted catalog access, including all mutations
	RoleAdmin UserRole = "admin"

	// Default role for registered visitors (read-only catalog access)
	RoleUser UserRole = "user"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale leaves room for intermediate roles (e.g. guides)
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
